package models

import "time"

// Client is a person who books through the voice assistant. Rows belong to
// the user that owns them; clients are never deleted, only toggled inactive.
type Client struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"size:500" json:"notes"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	// denormalized analytics, maintained by the appointment use cases
	TotalAppointments int        `gorm:"default:0" json:"total_appointments"`
	LastAppointment   *time.Time `json:"last_appointment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
