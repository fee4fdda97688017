package appointment

import (
	"context"

	"github.com/voicebookhq/voicebook-backend/internal/audit"
	domain "github.com/voicebookhq/voicebook-backend/internal/domain/appointment"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/models"
	"github.com/voicebookhq/voicebook-backend/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditDispatcher,
		tz:    tz,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// completing feeds the denormalized analytics on client and service
	if err := uc.repo.BumpClientAppointmentStats(ctx, ap.ClientID, now); err != nil {
		return nil, err
	}
	if err := uc.repo.BumpServicePopularity(ctx, ap.ServiceID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
