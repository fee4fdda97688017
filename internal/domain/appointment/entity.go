package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/models"
)

// Cancel moves a scheduled appointment to cancelled.
func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete moves a scheduled appointment to completed.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ServiceDurationMinutes parses the "<digits>min" duration carried by a
// service into whole minutes.
func ServiceDurationMinutes(duration string) (int, error) {
	raw, ok := strings.CutSuffix(duration, "min")
	if !ok {
		return 0, httperr.ErrBusiness("invalid_duration")
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0, httperr.ErrBusiness("invalid_duration")
	}

	return minutes, nil
}
