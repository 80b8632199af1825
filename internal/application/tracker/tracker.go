// Package tracker is the single entry point for reading and changing the
// attendance data. Every mutation runs in one store transaction and, once
// committed, publishes a change event that refreshes the in-memory view
// the read accessors answer from.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/projections"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new unique identifier.
type IDGenerator func() string

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the clock used for the current year and export time.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		if c != nil {
			t.now = c
		}
	}
}

// WithIDGenerator overrides how new ids are produced.
func WithIDGenerator(g IDGenerator) Option {
	return func(t *Tracker) {
		if g != nil {
			t.newID = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// Tracker owns the store and the read model built on top of it.
type Tracker struct {
	store  store.Store
	bus    shared.EventBus
	view   *projections.ClassroomView
	now    Clock
	newID  IDGenerator
	logger *slog.Logger
}

// New wires the tracker to st and bus, subscribes the read model and loads
// it. The tracker takes ownership of both; Close releases them.
func New(ctx context.Context, st store.Store, bus shared.EventBus, opts ...Option) (*Tracker, error) {
	if st == nil {
		return nil, errors.New("tracker: store is required")
	}
	if bus == nil {
		return nil, errors.New("tracker: event bus is required")
	}

	t := &Tracker{
		store:  st,
		bus:    bus,
		view:   projections.NewClassroomView(st),
		now:    timeutil.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := bus.SubscribeAll(t.view.Handle); err != nil {
		return nil, fmt.Errorf("tracker: subscribe read model: %w", err)
	}
	if err := t.view.Reload(ctx); err != nil {
		return nil, shared.WrapError("tracker", "New", shared.ErrStorage, "initial load failed", err)
	}

	t.logger.Debug("tracker ready", "version", t.view.Version())
	return t, nil
}

// Refresh reloads the read model from the store.
func (t *Tracker) Refresh(ctx context.Context) error {
	if err := t.view.Reload(ctx); err != nil {
		return shared.WrapError("tracker", "Refresh", shared.ErrStorage, "reload failed", err)
	}
	return nil
}

// Close shuts the event bus down and closes the store.
func (t *Tracker) Close() error {
	var errs []error
	if err := t.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close event bus: %w", err))
	}
	if err := t.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

func (t *Tracker) currentYear() int {
	return timeutil.In(t.now()).Year()
}

// mutation is the body of a write transaction. It reports whether anything
// was written.
type mutation func(tx store.Tx) (changed bool, err error)

// commit runs fn in one write transaction and publishes a change event for
// tables when something was written.
func (t *Tracker) commit(ctx context.Context, op string, event shared.EventType, aggregateID string, tables []string, fn mutation) error {
	changed := false
	err := t.store.Update(ctx, func(tx store.Tx) error {
		c, err := fn(tx)
		changed = c
		return err
	})
	if err != nil {
		t.logger.Error("mutation failed", "op", op, "id", aggregateID, "error", err)
		if shared.IsValidation(err) {
			return err
		}
		return shared.WrapError("tracker", op, shared.ErrStorage, "transaction failed", err)
	}

	if !changed {
		t.logger.Debug("mutation was a no-op", "op", op, "id", aggregateID)
		return nil
	}

	t.logger.Debug("mutation committed", "op", op, "id", aggregateID, "tables", tables)

	// The data is already committed; a stale view is recoverable with Refresh.
	if err := t.bus.Publish(shared.NewChangeEvent(event, aggregateID, tables...)); err != nil {
		t.logger.Error("publish change event", "op", op, "event_type", event, "error", err)
	}
	return nil
}
