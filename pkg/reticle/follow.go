package reticle

import (
	"context"
	"slices"

	"reticlego/pkg/model"
	"reticlego/pkg/store"
)

// ReadSnapshot collects the render keys currently in the store.
func ReadSnapshot(ctx context.Context, st store.Reader) model.Snapshot {
	snap := make(model.Snapshot, len(Keys))
	for _, k := range Keys {
		if v, ok := st.Get(ctx, k); ok {
			snap[k] = v
		}
	}
	return snap
}

// Follower keeps a renderer in step with a store. It is not safe for
// concurrent use; change events and Resync must run on the same goroutine.
type Follower struct {
	st          store.Store
	r           *Renderer
	snap        model.Snapshot
	unsubscribe func()
}

// Follow renders once from the store, then applies every change event to
// the rendered snapshot and renders again. Events are applied rather than
// re-read so changes published from another process render too.
func Follow(ctx context.Context, st store.Store, r *Renderer) *Follower {
	f := &Follower{st: st, r: r}
	f.Resync(ctx)
	f.unsubscribe = st.Subscribe(f.apply)
	return f
}

// Resync replaces the followed snapshot with the store's current values and
// renders it. Used when change events may have been missed.
func (f *Follower) Resync(ctx context.Context) {
	f.snap = ReadSnapshot(ctx, f.st)
	f.r.Render(f.snap.Clone())
}

// Stop detaches from the store.
func (f *Follower) Stop() {
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
}

func (f *Follower) apply(c model.Change) {
	if !slices.Contains(Keys, c.Key) {
		return
	}
	if c.NewValue == nil {
		delete(f.snap, c.Key)
	} else {
		f.snap[c.Key] = c.NewValue
	}
	f.r.Render(f.snap.Clone())
}
