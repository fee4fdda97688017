// Package db manages the shared database handle for the backend.
package db

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/voicebookhq/voicebook-backend/internal/config"
	"github.com/voicebookhq/voicebook-backend/internal/models"
)

// ErrNotConnected is returned when an operation requires the database and the
// connection was never established.
var ErrNotConnected = errors.New("database not connected")

// Database wraps the gorm handle together with a connected flag. A failed
// connection attempt is logged and leaves the process in degraded mode
// instead of aborting startup; there is no retry.
type Database struct {
	gorm      *gorm.DB
	log       *slog.Logger
	connected atomic.Bool
}

// Connect opens the database, configures the connection pool, runs a smoke
// query and migrates the schema. On failure the returned Database reports
// Connected() == false.
func Connect(cfg *config.Config, log *slog.Logger) *Database {
	d := &Database{log: log}

	gdb, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Error("failed to connect database", slog.Any("error", err))
		return d
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Error("failed to get sql.DB", slog.Any("error", err))
		return d
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// smoke query: confirms the DSN actually reaches a live server
	var one int
	if err := gdb.Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Error("database smoke query failed", slog.Any("error", err))
		return d
	}

	if err := gdb.AutoMigrate(
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Error("failed to migrate schema", slog.Any("error", err))
		return d
	}

	d.gorm = gdb
	d.connected.Store(true)
	log.Info("database connected")
	return d
}

// Connected reports whether the connection attempt succeeded.
func (d *Database) Connected() bool {
	return d.connected.Load()
}

// Gorm returns the underlying handle, or ErrNotConnected in degraded mode.
func (d *Database) Gorm() (*gorm.DB, error) {
	if !d.Connected() {
		return nil, ErrNotConnected
	}
	return d.gorm, nil
}

// HealthCheck pings the database so the health endpoint can report on it.
func (d *Database) HealthCheck(ctx context.Context) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
