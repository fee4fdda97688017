// Package health aggregates component health checks for the /health endpoint.
package health

import (
	"context"
	"log/slog"
)

// Checkable represents a component that can report its health status.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// Checker aggregates health checks for multiple components.
type Checker struct {
	log    *slog.Logger
	names  []string
	checks map[string]Checkable
}

// NewChecker instantiates a Checker with the provided logger.
func NewChecker(log *slog.Logger) *Checker {
	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a checkable component by name.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}
	if _, exists := c.checks[name]; !exists {
		c.names = append(c.names, name)
	}
	c.checks[name] = check
}

// Check runs all registered health checks. It returns per-component statuses
// and whether every component passed.
func (c *Checker) Check(ctx context.Context) (map[string]string, bool) {
	results := make(map[string]string, len(c.checks))
	healthy := true

	for _, name := range c.names {
		check := c.checks[name]

		if err := check.HealthCheck(ctx); err != nil {
			results[name] = err.Error()
			healthy = false
			if c.log != nil {
				c.log.Error("health check failed",
					slog.String("component", name),
					slog.Any("error", err),
				)
			}
			continue
		}

		results[name] = "ok"
	}

	return results, healthy
}
