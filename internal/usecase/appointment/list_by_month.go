package appointment

import (
	"context"
	"time"

	domain "github.com/voicebookhq/voicebook-backend/internal/domain/appointment"
	"github.com/voicebookhq/voicebook-backend/internal/dto"
	"github.com/voicebookhq/voicebook-backend/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	tz   string
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	tz string,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
		tz:   tz,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(uc.tz)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
		})
	}

	return out, nil
}
