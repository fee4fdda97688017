package appointment

import (
	"context"
	"time"

	"github.com/voicebookhq/voicebook-backend/internal/audit"
	domain "github.com/voicebookhq/voicebook-backend/internal/domain/appointment"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/models"
	"github.com/voicebookhq/voicebook-backend/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID uint

	ClientID  uint
	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo              domain.Repository
	audit             *audit.Dispatcher
	minAdvanceMinutes int
	tz                string
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	minAdvanceMinutes int,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:              repo,
		audit:             auditDispatcher,
		minAdvanceMinutes: minAdvanceMinutes,
		tz:                tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// 1. referenced entities must exist, belong to the user and be active
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	if client.Status != "active" {
		return nil, httperr.ErrBusiness("client_inactive")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.Status != "active" {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	// 2. parse the requested slot in the configured timezone
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// 3. minimum advance window
	minAdvance := uc.minAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(uc.tz)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// 4. end time derives from the service duration
	minutes, err := domain.ServiceDurationMinutes(service.Duration)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(minutes) * time.Minute)

	// 5. no overlapping scheduled appointment
	if err := uc.repo.AssertNoTimeConflict(ctx, start, end); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:    in.UserID,
		ClientID:  client.ID,
		ServiceID: service.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
