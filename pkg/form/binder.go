package form

import (
	"context"

	"reticlego/pkg/logging"
	"reticlego/pkg/model"
)

// StoreReader is the slice of the store the binder needs.
type StoreReader interface {
	Get(ctx context.Context, key string) (model.Value, bool)
}

// Binder maps elements to store keys by element id.
type Binder struct {
	store StoreReader
}

// NewBinder creates a binder reading fallbacks from st.
func NewBinder(st StoreReader) *Binder {
	return &Binder{store: st}
}

// GetField reads an element's value: bool for checkboxes, string otherwise.
func (b *Binder) GetField(f Field) model.Value {
	if f.Kind() == KindCheckbox {
		return model.AsBool(f.Value())
	}
	return model.AsString(f.Value())
}

// SetField applies a value to f. The value comes from snap when it has the
// element's key, else from the store; with neither, nothing happens.
//
// suppress keeps the element from raising its native change signal, which is
// what stops a store-originated update from being written straight back.
func (b *Binder) SetField(ctx context.Context, f Field, snap model.Snapshot, suppress bool) bool {
	key := f.ID()
	if key == "" {
		return false
	}
	val, ok := b.resolve(ctx, key, snap)
	if !ok {
		return false
	}
	changed := f.SetValue(val, !suppress)
	if changed {
		logging.Trace("Binder: field set", "id", key, "value", val, "suppressed", suppress)
	}
	return changed
}

func (b *Binder) resolve(ctx context.Context, key string, snap model.Snapshot) (model.Value, bool) {
	if v, ok := snap.Lookup(key); ok {
		return v, true
	}
	if b.store == nil {
		return nil, false
	}
	v, ok := b.store.Get(ctx, key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
