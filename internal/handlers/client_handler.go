package handlers

import (
	"fmt"
	"net/http"
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

const clientStatsTTL = 5 * time.Minute

type ClientHandler struct {
	db    *dbpkg.Database
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewClientHandler(db *dbpkg.Database, c *cache.Cache, a *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, cache: c, audit: a}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Phone string `json:"phone" binding:"omitempty,phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes" binding:"max=500"`
}

type UpdateClientRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes  *string `json:"notes,omitempty" binding:"omitempty,max=500"`
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	s := store.NewUserClientStore(gdb, middleware.UserID(c))

	clients, err := s.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_clients"})
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	s := store.NewUserClientStore(gdb, userID)

	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := s.Get(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	client := models.Client{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Notes:  req.Notes,
		Status: "active",
	}

	s := store.NewUserClientStore(gdb, userID)
	if err := s.Create(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_client"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), clientStatsKey(userID))
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	s := store.NewUserClientStore(gdb, userID)

	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := s.Get(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Status != nil {
		client.Status = *req.Status
	}

	if err := s.Update(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_client"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), clientStatsKey(userID))
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Stats(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	key := clientStatsKey(userID)

	var cached store.ClientStats
	if err := h.cache.GetJSON(c.Request.Context(), key, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	s := store.NewUserClientStore(gdb, userID)
	stats, err := s.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client_stats"})
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, stats, clientStatsTTL)

	c.JSON(http.StatusOK, stats)
}

func clientStatsKey(userID uint) string {
	return fmt.Sprintf("stats:clients:%d", userID)
}
