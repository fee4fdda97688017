package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbpkg "github.com/voicebookhq/voicebook-backend/internal/db"
	"github.com/voicebookhq/voicebook-backend/internal/httperr"
)

// requireDB fetches the gorm handle, answering 503 when the process runs in
// degraded mode with no database connection.
func requireDB(c *gin.Context, database *dbpkg.Database) (*gorm.DB, bool) {
	gdb, err := database.Gorm()
	if err != nil {
		httperr.Unavailable(c, "database_unavailable", "Database connection is not available.")
		return nil, false
	}
	return gdb, true
}

// respondBusinessError maps a domain error code to the right HTTP status.
func respondBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)

	switch code {
	case "":
		httperr.Internal(c, "internal_error", "Unexpected error.")
	case "client_not_found", "service_not_found", "appointment_not_found":
		httperr.NotFound(c, code, "Resource not found.")
	default:
		httperr.BadRequest(c, code, "Request violates a booking rule.")
	}
}

// parseID reads the numeric :id route parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifier must be numeric.")
		return 0, false
	}
	return uint(id), true
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"details": err.Error(),
	})
}
