// Package store holds the per-request, user-scoped persistence helpers.
// Each store is constructed from the authenticated user id and filters every
// query on it, so one user's rows are invisible to every other user.
package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/voicebookhq/voicebook-backend/internal/models"
)

type UserClientStore struct {
	db     *gorm.DB
	userID uint
}

func NewUserClientStore(db *gorm.DB, userID uint) *UserClientStore {
	return &UserClientStore{db: db, userID: userID}
}

// ClientStats is the aggregate view returned by the client stats endpoint.
type ClientStats struct {
	TotalClients      int64 `json:"total_clients"`
	ActiveClients     int64 `json:"active_clients"`
	InactiveClients   int64 `json:"inactive_clients"`
	NewThisMonth      int64 `json:"new_this_month"`
	TotalAppointments int64 `json:"total_appointments"`
}

func (s *UserClientStore) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("user_id = ?", s.userID)
}

// List returns the user's clients, newest first, optionally filtered by a
// free-text search over name, phone and email.
func (s *UserClientStore) List(ctx context.Context, query string) ([]models.Client, error) {
	q := s.scoped(ctx)

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

func (s *UserClientStore) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.scoped(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Create persists a new client owned by the store's user.
func (s *UserClientStore) Create(ctx context.Context, client *models.Client) error {
	client.UserID = s.userID
	if client.Status == "" {
		client.Status = "active"
	}
	return s.db.WithContext(ctx).Create(client).Error
}

func (s *UserClientStore) Update(ctx context.Context, client *models.Client) error {
	return s.db.WithContext(ctx).Save(client).Error
}

// Stats aggregates the user's client counters in a handful of count queries.
func (s *UserClientStore) Stats(ctx context.Context) (*ClientStats, error) {
	stats := &ClientStats{}

	model := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Model(&models.Client{}).
			Where("user_id = ?", s.userID)
	}

	if err := model().Count(&stats.TotalClients).Error; err != nil {
		return nil, err
	}
	if err := model().Where("status = ?", "active").Count(&stats.ActiveClients).Error; err != nil {
		return nil, err
	}
	stats.InactiveClients = stats.TotalClients - stats.ActiveClients

	monthStart := time.Now().UTC().Truncate(24 * time.Hour)
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := model().Where("created_at >= ?", monthStart).Count(&stats.NewThisMonth).Error; err != nil {
		return nil, err
	}

	if err := model().
		Select("COALESCE(SUM(total_appointments), 0)").
		Scan(&stats.TotalAppointments).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
