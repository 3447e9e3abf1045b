package store

import (
	"context"

	"reticlego/pkg/model"
)

// StateStore is the durable key/value medium underneath the adapter.
// Implementations do not notify; that is the Adapter's job.
type StateStore interface {
	GetState(ctx context.Context, key string) (model.Value, bool, error)
	SetState(ctx context.Context, key string, val model.Value) error
	DeleteState(ctx context.Context, key string) error
	// ListStateKeys returns keys in lexicographic order.
	ListStateKeys(ctx context.Context) ([]string, error)
	CountState(ctx context.Context) (int, error)
	Close() error
}

// Listener receives change events.
type Listener func(model.Change)

// Store is the settings store every UI surface and the renderer share.
// Consumers should depend on Reader/Writer/Notifier when they need less.
type Store interface {
	Reader
	Writer
	Notifier
}

// Reader exposes read access.
type Reader interface {
	Get(ctx context.Context, key string) (model.Value, bool)
	Keys(ctx context.Context) ([]string, error)
	Len(ctx context.Context) (int, error)
}

// Writer exposes write access. Every successful call notifies subscribers.
type Writer interface {
	Set(ctx context.Context, key string, val model.Value) error
	Remove(ctx context.Context, key string) error
}

// Notifier exposes the change broadcast.
type Notifier interface {
	// Subscribe registers fn and returns a function that detaches it.
	Subscribe(fn Listener) (unsubscribe func())
}
