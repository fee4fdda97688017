package models

import "time"

// Service is a bookable offering (a haircut, a consultation, a class pack).
type Service struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Price    float64 `json:"price"`
	Currency string  `gorm:"size:3;default:'USD'" json:"currency"`

	// Duration is stored in the "<digits>min" form the voice layer speaks.
	Duration string `gorm:"size:10;not null" json:"duration"`

	Category string `gorm:"size:20;default:'individual'" json:"category"`
	Status   string `gorm:"size:20;default:'active'" json:"status"`

	PopularityScore float64 `gorm:"default:0" json:"popularity_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
