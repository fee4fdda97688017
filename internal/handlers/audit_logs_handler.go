package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	dbpkg "github.com/voicebookhq/voicebook-backend/internal/db"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
	"github.com/voicebookhq/voicebook-backend/internal/middleware"
	"github.com/voicebookhq/voicebook-backend/internal/models"
)

type AuditLogsHandler struct {
	db *dbpkg.Database
}

func NewAuditLogsHandler(db *dbpkg.Database) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := middleware.UserID(c)

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// always scoped to the requesting user
	q := gdb.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("user_id = ?", userID)

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Error counting audit entries.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Error listing audit entries.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
