package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/voicebookhq/voicebook-backend/internal/audit"
	"github.com/voicebookhq/voicebook-backend/internal/cache"
	"github.com/voicebookhq/voicebook-backend/internal/config"
	dbpkg "github.com/voicebookhq/voicebook-backend/internal/db"
	"github.com/voicebookhq/voicebook-backend/internal/handlers"
	"github.com/voicebookhq/voicebook-backend/internal/health"
	"github.com/voicebookhq/voicebook-backend/internal/metrics"
	"github.com/voicebookhq/voicebook-backend/internal/middleware"
)

const version = "1.0.0"

// Deps carries the shared singletons the route tree is wired from.
type Deps struct {
	DB     *dbpkg.Database
	Cache  *cache.Cache
	Config *config.Config
	Log    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(deps.Config.CORSOrigins))
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(metrics.Middleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	var auditLogger *audit.Logger
	if gdb, err := deps.DB.Gorm(); err == nil {
		auditLogger = audit.New(gdb)
	}
	auditDispatcher := audit.NewDispatcher(auditLogger, deps.Log)

	checker := health.NewChecker(deps.Log)
	checker.AddCheck("database", deps.DB)
	if deps.Cache != nil {
		checker.AddCheck("redis", deps.Cache)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(checker, version)
	clientHandler := handlers.NewClientHandler(deps.DB, deps.Cache, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(deps.DB, deps.Cache, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(deps.DB, deps.Cache, auditDispatcher, deps.Config)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON, bearer scoped)
	// ======================================================
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(deps.Config))
	{
		api.GET("/clients", clientHandler.List)
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients/stats", clientHandler.Stats)
		api.GET("/clients/:id", clientHandler.Get)
		api.PATCH("/clients/:id", clientHandler.Update)

		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.GET("/services/stats", serviceHandler.Stats)
		api.GET("/services/:id", serviceHandler.Get)
		api.PATCH("/services/:id", serviceHandler.Update)

		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.ListByDate)
		api.GET("/appointments/month", appointmentHandler.ListByMonth)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
