// Package settings wires the settings page to the store: two-way field
// binding, import/export, reset to defaults and the profile actions.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"reticlego/pkg/config"
	"reticlego/pkg/form"
	"reticlego/pkg/hotkey"
	"reticlego/pkg/logging"
	"reticlego/pkg/model"
	"reticlego/pkg/profile"
	"reticlego/pkg/store"
)

var (
	// ErrInvalidImport is returned when imported text is not a JSON object.
	ErrInvalidImport = errors.New("invalid settings data")
	// ErrUnknownField is returned when an edit names no element on the page.
	ErrUnknownField = errors.New("unknown field")
)

// Controller owns the settings page. All methods must run on the event loop.
type Controller struct {
	// bound is the Bind context, used by element, store and hotkey callbacks,
	// which have no caller context of their own.
	bound    context.Context
	store    store.Store
	page     *Page
	binder   *form.Binder
	profiles *profile.Manager
	defaults []model.Snapshot
	reporter profile.Reporter
	hotkeys  hotkey.Registrar

	unsubscribe func()
}

// NewController creates a controller. hotkeys may be nil.
func NewController(st store.Store, page *Page, defaults config.DefaultsConfig, r profile.Reporter, hk hotkey.Registrar) *Controller {
	if r == nil {
		r = profile.ReporterFunc(func(msg string) { slog.Warn("Settings: " + msg) })
	}
	binder := form.NewBinder(st)
	sel := profile.NewSelector(page.ProfileName, page.LoadButton, page.SaveButton, page.DeleteButton)
	return &Controller{
		bound:    context.Background(),
		store:    st,
		page:     page,
		binder:   binder,
		profiles: profile.NewManager(st, binder, page.Doc, sel, r),
		defaults: defaults.Layers(),
		reporter: r,
		hotkeys:  hk,
	}
}

// Page returns the bound page.
func (c *Controller) Page() *Page { return c.page }

// Profiles returns the profile manager.
func (c *Controller) Profiles() *profile.Manager { return c.profiles }

// Bind loads stored values into every field, wires user edits to the store
// and store changes back to the fields, registers the quick-slot hotkeys and
// populates the profile list.
func (c *Controller) Bind(ctx context.Context) error {
	c.bound = context.WithoutCancel(ctx)

	c.forEachBound(func(f form.Field) {
		c.binder.SetField(ctx, f, nil, true)
		f.OnChange(func() { c.onFieldChange(f) })
	})

	c.unsubscribe = c.store.Subscribe(c.onStoreChange)

	if c.hotkeys != nil {
		for i, in := range c.page.QuickSlots {
			slot := in.ID()
			if err := c.hotkeys.Register(i+1, func() { c.onHotkey(slot) }); err != nil {
				slog.Warn("Failed to register quick slot hotkey", "slot", slot, "error", err)
			}
		}
	}

	return c.profiles.UpdateProfiles(ctx)
}

// Resync reloads every bound element from the store without raising change
// signals and refreshes the profile list. Used after changes may have been
// missed, such as a bridge reconnect.
func (c *Controller) Resync(ctx context.Context) error {
	c.forEachBound(func(f form.Field) {
		c.binder.SetField(ctx, f, nil, true)
	})
	return c.profiles.UpdateProfiles(ctx)
}

func (c *Controller) forEachBound(fn func(form.Field)) {
	c.page.Doc.ForEachField(fn)
	for _, in := range c.page.QuickSlots {
		fn(in)
	}
}

func (c *Controller) onHotkey(slot string) {
	err := c.OnQuickSlot(c.bound, slot)
	if err != nil && !errors.Is(err, profile.ErrQuickSlotEmpty) {
		slog.Warn("Quick slot hotkey failed", "slot", slot, "error", err)
	}
}

// Close detaches from the store.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// onFieldChange is the only path by which a user edit reaches the store.
func (c *Controller) onFieldChange(f form.Field) {
	val := c.binder.GetField(f)
	logging.Trace("Settings: field changed", "id", f.ID(), "value", val)
	if err := c.store.Set(c.bound, f.ID(), val); err != nil {
		slog.Error("Failed to store field", "id", f.ID(), "error", err)
	}
}

// onStoreChange mirrors a stored value into its element without raising the
// element's change signal, so the update is not written back.
func (c *Controller) onStoreChange(ch model.Change) {
	if strings.HasPrefix(ch.Key, config.SavedPrefix) {
		if err := c.profiles.UpdateProfiles(c.bound); err != nil {
			slog.Error("Failed to refresh profiles", "error", err)
		}
		return
	}
	if ch.NewValue == nil {
		return
	}
	el, ok := c.page.Doc.Element(ch.Key)
	if !ok {
		return
	}
	c.binder.SetField(c.bound, el, model.Snapshot{ch.Key: ch.NewValue}, true)
}

// Fields returns the current profile field values.
func (c *Controller) Fields() model.Snapshot {
	return c.profiles.Retrieve()
}

// Edit applies v to the element id as if the user had changed it.
func (c *Controller) Edit(id string, v model.Value) (bool, error) {
	el, ok := c.page.Doc.Element(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	return el.SetValue(model.Normalize(v), true), nil
}

// ExportSettings writes the current profile fields as indented JSON into the
// transfer field, selects it for copying and returns the text.
func (c *Controller) ExportSettings() (string, error) {
	data, err := json.MarshalIndent(c.profiles.Retrieve(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	text := string(data)
	c.page.DataTransfer.SetValue(text, false)
	c.page.DataTransfer.Select()
	return text, nil
}

// ImportSettings applies text as a snapshot. Text that is not a JSON object
// is reported and nothing changes.
func (c *Controller) ImportSettings(ctx context.Context, text string) error {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return c.fail(fmt.Errorf("%w: %v", ErrInvalidImport, err))
	}
	snap, ok := model.AsSnapshot(model.Normalize(raw))
	if !ok {
		return c.fail(fmt.Errorf("%w: expected an object", ErrInvalidImport))
	}
	c.profiles.Apply(ctx, snap, false)
	slog.Info("Settings imported", "fields", len(snap))
	return nil
}

// Import applies the transfer field's text.
func (c *Controller) Import(ctx context.Context) error {
	return c.ImportSettings(ctx, model.AsString(c.page.DataTransfer.Value()))
}

// ResetToDefaults applies the reticle, general and window default layers in
// that order.
func (c *Controller) ResetToDefaults(ctx context.Context) {
	for _, layer := range c.defaults {
		c.profiles.Apply(ctx, layer, false)
	}
	slog.Info("Settings reset to defaults")
}

// SeedDefaults resets to defaults when the store is empty, so a first run
// starts with a visible reticle. It reports whether it did.
func (c *Controller) SeedDefaults(ctx context.Context) (bool, error) {
	n, err := c.store.Len(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count settings: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	c.ResetToDefaults(ctx)
	return true, nil
}

// Save stores the form under the selected profile.
func (c *Controller) Save(ctx context.Context) error { return c.profiles.Save(ctx) }

// Load applies the selected profile.
func (c *Controller) Load(ctx context.Context) error { return c.profiles.Load(ctx) }

// Create saves the form as a new profile and selects it.
func (c *Controller) Create(ctx context.Context, label string) error {
	return c.profiles.Create(ctx, label)
}

// Remove deletes the selected profile.
func (c *Controller) Remove(ctx context.Context) error {
	return c.profiles.Remove(ctx, c.profiles.Selector().Selected())
}

// RemoveLabel deletes the named profile.
func (c *Controller) RemoveLabel(ctx context.Context, label string) error {
	return c.profiles.Remove(ctx, label)
}

// SelectProfile changes the selector to label if it is listed.
func (c *Controller) SelectProfile(label string) error {
	sel := c.profiles.Selector()
	if !slices.Contains(sel.Labels(), label) {
		return fmt.Errorf("%w - %s", profile.ErrProfileNotFound, label)
	}
	sel.Select(label)
	return nil
}

// OnQuickSlot loads the profile assigned to slot.
func (c *Controller) OnQuickSlot(ctx context.Context, slot string) error {
	return c.profiles.OnQuickSlot(ctx, slot)
}

// QuickSlots lists the quick-slot assignments.
func (c *Controller) QuickSlots(ctx context.Context) []profile.QuickSlot {
	return c.profiles.QuickSlots(ctx)
}

func (c *Controller) fail(err error) error {
	c.reporter.Alert("ERROR: " + err.Error())
	return err
}
