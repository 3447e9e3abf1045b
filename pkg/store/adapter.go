package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"reticlego/pkg/logging"
	"reticlego/pkg/model"
)

// Adapter wraps a StateStore and broadcasts every write to subscribers.
// Both the settings surface and the renderer hold the same *Adapter (or, in
// separate processes, adapters over the same database joined by a bridge).
type Adapter struct {
	medium StateStore
	bus    Bus
	origin string
}

// NewAdapter creates an adapter over medium with a fresh origin id.
func NewAdapter(medium StateStore) *Adapter {
	return &Adapter{
		medium: medium,
		origin: uuid.New().String(),
	}
}

// Origin identifies changes written through this adapter.
func (a *Adapter) Origin() string { return a.origin }

// Medium returns the underlying durable store.
func (a *Adapter) Medium() StateStore { return a.medium }

func (a *Adapter) Get(ctx context.Context, key string) (model.Value, bool) {
	v, ok, err := a.medium.GetState(ctx, key)
	if err != nil {
		slog.Error("Store: read failed", "key", key, "error", err)
		return nil, false
	}
	return v, ok
}

func (a *Adapter) Set(ctx context.Context, key string, val model.Value) error {
	if key == "" {
		return fmt.Errorf("store: empty key")
	}
	old, _, err := a.medium.GetState(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}
	val = model.Normalize(val)
	if err := a.medium.SetState(ctx, key, val); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	logging.Trace("Store: set", "key", key, "value", val)
	a.bus.Emit(model.Change{Key: key, NewValue: val, OldValue: old, Origin: a.origin})
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	old, existed, err := a.medium.GetState(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}
	if err := a.medium.DeleteState(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	if !existed {
		old = nil
	}
	logging.Trace("Store: remove", "key", key)
	a.bus.Emit(model.Change{Key: key, OldValue: old, Origin: a.origin})
	return nil
}

func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	return a.medium.ListStateKeys(ctx)
}

func (a *Adapter) Len(ctx context.Context) (int, error) {
	return a.medium.CountState(ctx)
}

func (a *Adapter) Subscribe(fn Listener) func() {
	return a.bus.Subscribe(fn)
}

// Publish delivers a change that was written elsewhere (another process
// sharing the medium) to local subscribers. Nothing is written.
func (a *Adapter) Publish(c model.Change) {
	c.NewValue = model.Normalize(c.NewValue)
	c.OldValue = model.Normalize(c.OldValue)
	a.bus.Emit(c)
}

// Close closes the medium.
func (a *Adapter) Close() error {
	return a.medium.Close()
}
