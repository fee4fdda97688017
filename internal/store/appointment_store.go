package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/voicebookhq/voicebook-backend/internal/domain/appointment"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/models"
)

// UserAppointmentStore is the gorm-backed implementation of the booking
// repository, bound to a single user.
type UserAppointmentStore struct {
	db     *gorm.DB
	userID uint
}

func NewUserAppointmentStore(db *gorm.DB, userID uint) *UserAppointmentStore {
	return &UserAppointmentStore{db: db, userID: userID}
}

func (s *UserAppointmentStore) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("user_id = ?", s.userID)
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (s *UserAppointmentStore) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := s.scoped(ctx).
		Where("id = ?", clientID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *UserAppointmentStore) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := s.scoped(ctx).
		Where("id = ?", serviceID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *UserAppointmentStore) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.UserID = s.userID
	return s.db.WithContext(ctx).Create(ap).Error
}

func (s *UserAppointmentStore) AssertNoTimeConflict(
	ctx context.Context,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"user_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			s.userID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func (s *UserAppointmentStore) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.scoped(ctx).
		Where("id = ?", appointmentID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (s *UserAppointmentStore) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return s.db.WithContext(ctx).Save(ap).Error
}

func (s *UserAppointmentStore) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := s.scoped(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Denormalized analytics
// --------------------------------------------------

func (s *UserAppointmentStore) BumpClientAppointmentStats(
	ctx context.Context,
	clientID uint,
	at time.Time,
) error {
	return s.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ? AND user_id = ?", clientID, s.userID).
		Updates(map[string]any{
			"total_appointments": gorm.Expr("total_appointments + 1"),
			"last_appointment":   at,
		}).Error
}

func (s *UserAppointmentStore) BumpServicePopularity(
	ctx context.Context,
	serviceID uint,
) error {
	return s.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ? AND user_id = ?", serviceID, s.userID).
		Update("popularity_score", gorm.Expr("popularity_score + 1")).Error
}

// Compile-time check
var _ domain.Repository = (*UserAppointmentStore)(nil)
