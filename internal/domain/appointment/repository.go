package appointment

import (
	"context"
	"time"

	"github.com/voicebookhq/voicebook-backend/internal/models"
)

// Repository is the persistence surface the booking use cases need. An
// implementation is bound to a single user; every lookup and mutation is
// scoped to that user's rows.
type Repository interface {
	// -------- Referenced entities --------
	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Denormalized analytics --------
	BumpClientAppointmentStats(
		ctx context.Context,
		clientID uint,
		at time.Time,
	) error

	BumpServicePopularity(
		ctx context.Context,
		serviceID uint,
	) error
}
