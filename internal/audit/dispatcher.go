package audit

import (
	"log/slog"

	"github.com/voicebookhq/voicebook-backend/internal/metrics"
)

type Event struct {
	UserID   uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher persists audit events off the request path. A full queue drops
// the event: auditing must never block or fail an API call.
type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if d.logger == nil {
			continue
		}
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error("audit write failed", slog.Any("error", err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		metrics.RecordAuditDrop()
		d.log.Warn("audit queue full, dropping event",
			slog.String("action", ev.Action),
			slog.String("entity", ev.Entity),
		)
	}
}
