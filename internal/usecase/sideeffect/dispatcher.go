package sideeffect

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"studiohub/internal/domain/notification"

	"github.com/google/uuid"
)

const writeTimeout = 5 * time.Second

// Event describes a committed state change worth telling someone about.
type Event struct {
	Kind         string // reservation / job / listing / bid / club
	EntityID     uuid.UUID
	Action       string
	OldState     string
	NewState     string
	ActorID      uuid.UUID
	Counterpart  uuid.UUID // the party to notify
	Title        string
	Message      string
	WithActivity bool // also append an activity record for the actor
}

// Writer persists notifications and activity records outside the
// primary transaction.
type Writer interface {
	CreateNotification(ctx context.Context, n *notification.Notification) error
	CreateActivity(ctx context.Context, a *notification.ActivityRecord) error
}

// Dispatcher delivers notifications after the primary transaction has
// committed. Delivery is best-effort: failures are logged and counted,
// never returned to the caller, and never roll back the state change
// they describe.
type Dispatcher struct {
	writer   Writer
	logger   *slog.Logger
	wg       sync.WaitGroup
	failures atomic.Int64
}

func NewDispatcher(writer Writer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{writer: writer, logger: logger}
}

// Dispatch fires the event asynchronously. The write runs on a context
// detached from the request so a client disconnect cannot abort it.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
		defer cancel()

		n := notification.New(ev.Counterpart, ev.Kind, ev.Title, ev.Message, ev.Kind, ev.EntityID)
		if err := d.writer.CreateNotification(wctx, n); err != nil {
			d.failures.Add(1)
			d.logger.Warn("notification write failed",
				"kind", ev.Kind,
				"entity_id", ev.EntityID.String(),
				"action", ev.Action,
				"error", err.Error(),
			)
		}

		if !ev.WithActivity {
			return
		}
		a := notification.NewActivity(ev.ActorID, ev.Kind, ev.Title, ev.Message, ev.Kind, ev.EntityID)
		if err := d.writer.CreateActivity(wctx, a); err != nil {
			d.failures.Add(1)
			d.logger.Warn("activity write failed",
				"kind", ev.Kind,
				"entity_id", ev.EntityID.String(),
				"action", ev.Action,
				"error", err.Error(),
			)
		}
	}()
}

// Wait blocks until all in-flight dispatches finish. Used on shutdown
// and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Failures reports how many side-effect writes have failed since start.
func (d *Dispatcher) Failures() int64 {
	return d.failures.Load()
}
