package appointment

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voicebookhq/voicebook-backend/internal/audit"
	domain "github.com/voicebookhq/voicebook-backend/internal/domain/appointment"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/models"
)

// fakeRepo is an in-memory domain.Repository for a single user.
type fakeRepo struct {
	clients      map[uint]*models.Client
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	nextID       uint

	clientBumps  int
	serviceBumps int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:      make(map[uint]*models.Client),
		services:     make(map[uint]*models.Service),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (f *fakeRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) AssertNoTimeConflict(ctx context.Context, start, end time.Time) error {
	for _, ap := range f.appointments {
		if ap.Status != string(domain.StatusScheduled) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		return ap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) BumpClientAppointmentStats(ctx context.Context, clientID uint, at time.Time) error {
	f.clientBumps++
	return nil
}

func (f *fakeRepo) BumpServicePopularity(ctx context.Context, serviceID uint) error {
	f.serviceBumps++
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nil, slog.Default())
}

func seedRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.clients[1] = &models.Client{ID: 1, Name: "Alice", Status: "active"}
	repo.clients[2] = &models.Client{ID: 2, Name: "Bob", Status: "inactive"}
	repo.services[1] = &models.Service{ID: 1, Name: "Consultation", Duration: "30min", Status: "active"}
	repo.services[2] = &models.Service{ID: 2, Name: "Retired", Duration: "60min", Status: "inactive"}
	return repo
}

func createInput(t time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		UserID:    7,
		ClientID:  1,
		ServiceID: 1,
		Date:      t.Format("2006-01-02"),
		Time:      t.Format("15:04"),
	}
}

func TestCreateAppointment(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	t.Run("happy path", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		ap, err := uc.Execute(context.Background(), createInput(tomorrow))
		require.NoError(t, err)

		assert.Equal(t, uint(7), ap.UserID)
		assert.Equal(t, string(domain.StatusScheduled), ap.Status)
		assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
	})

	t.Run("unknown client", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		in := createInput(tomorrow)
		in.ClientID = 99
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "client_not_found"))
	})

	t.Run("inactive client", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		in := createInput(tomorrow)
		in.ClientID = 2
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "client_inactive"))
	})

	t.Run("inactive service", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		in := createInput(tomorrow)
		in.ServiceID = 2
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "service_inactive"))
	})

	t.Run("too soon", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		_, err := uc.Execute(context.Background(), createInput(time.Now().UTC().Add(10*time.Minute)))
		assert.True(t, httperr.IsBusiness(err, "too_soon"))
	})

	t.Run("invalid date", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		in := createInput(tomorrow)
		in.Date = "31-12-2026"
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	})

	t.Run("overlapping slot rejected", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")

		_, err := uc.Execute(context.Background(), createInput(tomorrow))
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), createInput(tomorrow.Add(10*time.Minute)))
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	})
}

func TestCancelAppointment(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	repo := seedRepo()
	createUC := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")
	cancelUC := NewCancelAppointment(repo, testDispatcher(), "UTC")

	ap, err := createUC.Execute(context.Background(), createInput(tomorrow))
	require.NoError(t, err)

	cancelled, err := cancelUC.Execute(context.Background(), 7, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = cancelUC.Execute(context.Background(), 7, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = cancelUC.Execute(context.Background(), 7, 999)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCompleteAppointment(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	repo := seedRepo()
	createUC := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")
	completeUC := NewCompleteAppointment(repo, testDispatcher(), "UTC")

	ap, err := createUC.Execute(context.Background(), createInput(tomorrow))
	require.NoError(t, err)

	completed, err := completeUC.Execute(context.Background(), 7, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// completion feeds the denormalized analytics
	assert.Equal(t, 1, repo.clientBumps)
	assert.Equal(t, 1, repo.serviceBumps)
}

func TestListAppointmentsByDate(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	repo := seedRepo()
	createUC := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")
	listUC := NewListAppointmentsByDate(repo, "UTC")

	ap, err := createUC.Execute(context.Background(), createInput(tomorrow))
	require.NoError(t, err)

	// fill associations the fake does not preload
	ap.Client = *repo.clients[1]
	ap.Service = *repo.services[1]

	out, err := listUC.Execute(context.Background(), tomorrow)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Alice", out[0].ClientName)
	assert.Equal(t, "Consultation", out[0].ServiceName)

	empty, err := listUC.Execute(context.Background(), tomorrow.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListAppointmentsByMonth(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	repo := seedRepo()
	createUC := NewCreateAppointment(repo, testDispatcher(), 60, "UTC")
	listUC := NewListAppointmentsByMonth(repo, "UTC")

	_, err := createUC.Execute(context.Background(), createInput(tomorrow))
	require.NoError(t, err)

	out, err := listUC.Execute(context.Background(), tomorrow.Year(), int(tomorrow.Month()))
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
