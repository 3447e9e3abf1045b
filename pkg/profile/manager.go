// Package profile saves and restores whole-form snapshots under named
// profiles and resolves quick-slot shortcuts to them.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"reticlego/pkg/config"
	"reticlego/pkg/form"
	"reticlego/pkg/model"
	"reticlego/pkg/store"
)

var (
	// ErrEmptyLabel is returned when an operation needs a profile label and got none.
	ErrEmptyLabel = errors.New("invalid label")
	// ErrProfileNotFound is returned when no snapshot is stored under the label.
	ErrProfileNotFound = errors.New("no data found under label")
	// ErrInvalidProfile is returned when the stored value is not a snapshot.
	ErrInvalidProfile = errors.New("stored profile is not an object")
	// ErrQuickSlotEmpty is returned when an activated quick slot holds no label.
	ErrQuickSlotEmpty = errors.New("quick slot is empty")
)

// Reporter shows a message to the user.
type Reporter interface {
	Alert(msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(msg string)

func (f ReporterFunc) Alert(msg string) { f(msg) }

// FieldSet enumerates the bound profile fields.
type FieldSet interface {
	ForEachField(fn func(form.Field))
}

// QuickSlot is one hotkey shortcut and the label it recalls.
type QuickSlot struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Manager implements profile save/load/create/remove and quick slots.
type Manager struct {
	store    store.Store
	binder   *form.Binder
	fields   FieldSet
	selector *Selector
	reporter Reporter
}

// NewManager creates a profile manager.
func NewManager(st store.Store, binder *form.Binder, fields FieldSet, sel *Selector, r Reporter) *Manager {
	if r == nil {
		r = ReporterFunc(func(msg string) { slog.Warn("Profile: " + msg) })
	}
	return &Manager{store: st, binder: binder, fields: fields, selector: sel, reporter: r}
}

// Selector returns the profile selector the manager keeps in sync.
func (m *Manager) Selector() *Selector { return m.selector }

// Retrieve snapshots every bound field, keyed by element id.
func (m *Manager) Retrieve() model.Snapshot {
	snap := make(model.Snapshot)
	m.fields.ForEachField(func(f form.Field) {
		snap[f.ID()] = m.binder.GetField(f)
	})
	return snap
}

// Apply sets every bound field from snap; fields snap lacks fall back to
// their stored value.
func (m *Manager) Apply(ctx context.Context, snap model.Snapshot, suppress bool) {
	m.fields.ForEachField(func(f form.Field) {
		m.binder.SetField(ctx, f, snap, suppress)
	})
}

// SaveData stores the current form state under label.
func (m *Manager) SaveData(ctx context.Context, label string) error {
	if label == "" {
		return m.fail(fmt.Errorf("%w - %s", ErrEmptyLabel, label))
	}
	if err := m.store.Set(ctx, config.SavedPrefix+label, m.Retrieve()); err != nil {
		return m.fail(fmt.Errorf("failed to save profile %q: %w", label, err))
	}
	slog.Info("Profile saved", "label", label)
	return nil
}

// LoadData applies the snapshot stored under label. An empty label always
// fails: there is no default profile.
func (m *Manager) LoadData(ctx context.Context, label string) error {
	if label == "" {
		return m.fail(fmt.Errorf("%w - %s", ErrProfileNotFound, label))
	}
	raw, ok := m.store.Get(ctx, config.SavedPrefix+label)
	if !ok || raw == nil {
		return m.fail(fmt.Errorf("%w - %s", ErrProfileNotFound, label))
	}
	snap, ok := model.AsSnapshot(raw)
	if !ok {
		return m.fail(fmt.Errorf("%w - %s", ErrInvalidProfile, label))
	}
	m.Apply(ctx, snap, false)
	slog.Info("Profile loaded", "label", label)
	return nil
}

// Labels returns the stored profile labels, sorted and de-duplicated.
func (m *Manager) Labels(ctx context.Context) ([]string, error) {
	keys, err := m.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	var labels []string
	for _, k := range keys {
		if label, ok := strings.CutPrefix(k, config.SavedPrefix); ok {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)
	return slices.Compact(labels), nil
}

// UpdateProfiles repopulates the selector. The previous selection survives
// when still listed; otherwise the first label is selected, or "" with the
// profile controls disabled when none exist.
func (m *Manager) UpdateProfiles(ctx context.Context) error {
	labels, err := m.Labels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	selected := m.selector.Selected()
	m.selector.setLabels(labels)

	if len(labels) > 0 {
		if !slices.Contains(labels, selected) {
			selected = labels[0]
		}
		m.selector.setEnabled(true)
	} else {
		selected = ""
		m.selector.setEnabled(false)
	}
	m.selector.Select(selected)
	return nil
}

// Create saves the current form under label, refreshes the list and selects
// it. An empty label (cancelled prompt) does nothing.
func (m *Manager) Create(ctx context.Context, label string) error {
	if label == "" {
		return ErrEmptyLabel
	}
	if err := m.SaveData(ctx, label); err != nil {
		return err
	}
	if err := m.UpdateProfiles(ctx); err != nil {
		return err
	}
	m.selector.Select(label)
	return nil
}

// Remove deletes the profile stored under label and refreshes the list.
func (m *Manager) Remove(ctx context.Context, label string) error {
	if label == "" {
		return m.fail(fmt.Errorf("%w - %s", ErrEmptyLabel, label))
	}
	if err := m.store.Remove(ctx, config.SavedPrefix+label); err != nil {
		return m.fail(fmt.Errorf("failed to delete profile %q: %w", label, err))
	}
	slog.Info("Profile deleted", "label", label)
	return m.UpdateProfiles(ctx)
}

// Save stores the form under the selected label.
func (m *Manager) Save(ctx context.Context) error {
	return m.SaveData(ctx, m.selector.Selected())
}

// Load applies the selected profile.
func (m *Manager) Load(ctx context.Context) error {
	return m.LoadData(ctx, m.selector.Selected())
}

// OnQuickSlot loads the profile named by the slot's stored label and selects it.
func (m *Manager) OnQuickSlot(ctx context.Context, slot string) error {
	raw, _ := m.store.Get(ctx, slot)
	label := model.AsString(raw)
	if label == "" {
		slog.Debug("Quick slot empty", "slot", slot)
		return ErrQuickSlotEmpty
	}
	if err := m.LoadData(ctx, label); err != nil {
		return err
	}
	m.selector.Select(label)
	return nil
}

// QuickSlots lists every slot with its stored label.
func (m *Manager) QuickSlots(ctx context.Context) []QuickSlot {
	slots := make([]QuickSlot, 0, config.QuickSlotCount)
	for i := 1; i <= config.QuickSlotCount; i++ {
		key := config.QuickSlotKey(i)
		raw, _ := m.store.Get(ctx, key)
		slots = append(slots, QuickSlot{Index: i, Key: key, Label: model.AsString(raw)})
	}
	return slots
}

func (m *Manager) fail(err error) error {
	m.reporter.Alert("ERROR: " + err.Error())
	return err
}
