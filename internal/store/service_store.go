package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/voicebookhq/voicebook-backend/internal/models"
)

type UserServiceStore struct {
	db     *gorm.DB
	userID uint
}

func NewUserServiceStore(db *gorm.DB, userID uint) *UserServiceStore {
	return &UserServiceStore{db: db, userID: userID}
}

// ServiceStats is the aggregate view returned by the service stats endpoint.
type ServiceStats struct {
	TotalServices    int64   `json:"total_services"`
	ActiveServices   int64   `json:"active_services"`
	InactiveServices int64   `json:"inactive_services"`
	AveragePrice     float64 `json:"average_price"`
	MostPopular      string  `json:"most_popular"`
}

// ServiceFilter narrows the service listing.
type ServiceFilter struct {
	Category string
	Status   string
	Query    string
}

func (s *UserServiceStore) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("user_id = ?", s.userID)
}

func (s *UserServiceStore) List(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	q := s.scoped(ctx)

	if category := strings.ToLower(strings.TrimSpace(filter.Category)); category != "" {
		q = q.Where("category = ?", category)
	}
	if status := strings.ToLower(strings.TrimSpace(filter.Status)); status != "" {
		q = q.Where("status = ?", status)
	}
	if query := strings.ToLower(strings.TrimSpace(filter.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ?", like)
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (s *UserServiceStore) Get(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.scoped(ctx).
		Where("id = ?", id).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *UserServiceStore) Create(ctx context.Context, service *models.Service) error {
	service.UserID = s.userID
	if service.Status == "" {
		service.Status = "active"
	}
	if service.Category == "" {
		service.Category = "individual"
	}
	return s.db.WithContext(ctx).Create(service).Error
}

func (s *UserServiceStore) Update(ctx context.Context, service *models.Service) error {
	return s.db.WithContext(ctx).Save(service).Error
}

func (s *UserServiceStore) Stats(ctx context.Context) (*ServiceStats, error) {
	stats := &ServiceStats{}

	model := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Model(&models.Service{}).
			Where("user_id = ?", s.userID)
	}

	if err := model().Count(&stats.TotalServices).Error; err != nil {
		return nil, err
	}
	if err := model().Where("status = ?", "active").Count(&stats.ActiveServices).Error; err != nil {
		return nil, err
	}
	stats.InactiveServices = stats.TotalServices - stats.ActiveServices

	if err := model().
		Select("COALESCE(AVG(price), 0)").
		Scan(&stats.AveragePrice).Error; err != nil {
		return nil, err
	}

	var top models.Service
	err := model().
		Order("popularity_score DESC").
		Limit(1).
		First(&top).Error
	if err == nil {
		stats.MostPopular = top.Name
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return stats, nil
}
