package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voicebookhq/voicebook-backend/internal/audit"
	"github.com/voicebookhq/voicebook-backend/internal/cache"
	"github.com/voicebookhq/voicebook-backend/internal/config"
	dbpkg "github.com/voicebookhq/voicebook-backend/internal/db"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/httpresp"
	"github.com/voicebookhq/voicebook-backend/internal/middleware"
	"github.com/voicebookhq/voicebook-backend/internal/store"
	"github.com/voicebookhq/voicebook-backend/internal/timezone"
	ucAppointment "github.com/voicebookhq/voicebook-backend/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *dbpkg.Database
	cache *cache.Cache
	audit *audit.Dispatcher
	cfg   *config.Config
}

func NewAppointmentHandler(
	db *dbpkg.Database,
	c *cache.Cache,
	a *audit.Dispatcher,
	cfg *config.Config,
) *AppointmentHandler {
	return &AppointmentHandler{db: db, cache: c, audit: a, cfg: cfg}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	repo := store.NewUserAppointmentStore(gdb, userID)
	uc := ucAppointment.NewCreateAppointment(
		repo,
		h.audit,
		h.cfg.MinAdvanceMinutes,
		h.cfg.DefaultTimezone,
	)

	ap, err := uc.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:    userID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(h.cfg.DefaultTimezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	repo := store.NewUserAppointmentStore(gdb, userID)
	uc := ucAppointment.NewListAppointmentsByDate(repo, h.cfg.DefaultTimezone)

	out, err := uc.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error listing appointments.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Query parameters year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Year is out of range.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Month must be 1-12.")
		return
	}

	repo := store.NewUserAppointmentStore(gdb, userID)
	uc := ucAppointment.NewListAppointmentsByMonth(repo, h.cfg.DefaultTimezone)

	out, err := uc.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error listing appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	repo := store.NewUserAppointmentStore(gdb, userID)
	uc := ucAppointment.NewCancelAppointment(repo, h.audit, h.cfg.DefaultTimezone)

	ap, err := uc.Execute(c.Request.Context(), userID, id)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	repo := store.NewUserAppointmentStore(gdb, userID)
	uc := ucAppointment.NewCompleteAppointment(repo, h.audit, h.cfg.DefaultTimezone)

	ap, err := uc.Execute(c.Request.Context(), userID, id)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	// completion changed the denormalized counters both stats read
	h.cache.Invalidate(c.Request.Context(), clientStatsKey(userID), serviceStatsKey(userID))

	c.JSON(http.StatusOK, ap)
}
