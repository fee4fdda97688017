package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voicebookhq/voicebook-backend/internal/audit"
	"github.com/voicebookhq/voicebook-backend/internal/cache"
	dbpkg "github.com/voicebookhq/voicebook-backend/internal/db"
	"github.com/voicebookhq/voicebook-backend/internal/httpresp"
	"github.com/voicebookhq/voicebook-backend/internal/middleware"
	"github.com/voicebookhq/voicebook-backend/internal/models"
	"github.com/voicebookhq/voicebook-backend/internal/store"
)

const serviceStatsTTL = 5 * time.Minute

type ServiceHandler struct {
	db    *dbpkg.Database
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewServiceHandler(db *dbpkg.Database, c *cache.Cache, a *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, cache: c, audit: a}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"omitempty,currency"`
	Duration string  `json:"duration" binding:"required,duration_min"`
	Category string  `json:"category" binding:"omitempty,oneof=individual package"`
}

type UpdateServiceRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Price    *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Currency *string  `json:"currency,omitempty" binding:"omitempty,currency"`
	Duration *string  `json:"duration,omitempty" binding:"omitempty,duration_min"`
	Category *string  `json:"category,omitempty" binding:"omitempty,oneof=individual package"`
	Status   *string  `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	s := store.NewUserServiceStore(gdb, middleware.UserID(c))

	services, err := s.List(c.Request.Context(), store.ServiceFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Query:    c.Query("query"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	s := store.NewUserServiceStore(gdb, middleware.UserID(c))

	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := s.Get(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	service := models.Service{
		Name:     req.Name,
		Price:    req.Price,
		Currency: strings.ToUpper(req.Currency),
		Duration: req.Duration,
		Category: strings.ToLower(req.Category),
		Status:   "active",
	}
	if service.Currency == "" {
		service.Currency = "USD"
	}

	s := store.NewUserServiceStore(gdb, userID)
	if err := s.Create(c.Request.Context(), &service); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), serviceStatsKey(userID))
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	s := store.NewUserServiceStore(gdb, userID)

	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := s.Get(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Currency != nil {
		service.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Category != nil {
		service.Category = strings.ToLower(*req.Category)
	}
	if req.Status != nil {
		service.Status = *req.Status
	}

	if err := s.Update(c.Request.Context(), service); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), serviceStatsKey(userID))
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Stats(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	key := serviceStatsKey(userID)

	var cached store.ServiceStats
	if err := h.cache.GetJSON(c.Request.Context(), key, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	s := store.NewUserServiceStore(gdb, userID)
	stats, err := s.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service_stats"})
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, stats, serviceStatsTTL)

	c.JSON(http.StatusOK, stats)
}

func serviceStatsKey(userID uint) string {
	return fmt.Sprintf("stats:services:%d", userID)
}
