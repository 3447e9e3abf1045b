// Package hotkey registers global keyboard shortcuts for quick slots.
package hotkey

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	hook "github.com/robotn/gohook"
)

// Registrar binds a callback to a quick-slot shortcut. Slots are 1-based.
type Registrar interface {
	Register(slot int, fn func()) error
}

// MaxSlot is the highest slot a digit key can address (slot 10 is "0").
const MaxSlot = 10

// Hook is a Registrar backed by a system-wide keyboard hook. Callbacks are
// handed to dispatch instead of being run on the hook goroutine.
type Hook struct {
	modifiers []string
	dispatch  func(func())

	mu    sync.Mutex
	slots []int
}

// NewHook creates a hook whose shortcuts are modifiers plus the slot digit.
func NewHook(modifiers []string, dispatch func(func())) *Hook {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Hook{modifiers: slices.Clone(modifiers), dispatch: dispatch}
}

// SlotKey returns the digit key for slot.
func SlotKey(slot int) (string, error) {
	if slot < 1 || slot > MaxSlot {
		return "", fmt.Errorf("quick slot %d out of range 1-%d", slot, MaxSlot)
	}
	return strconv.Itoa(slot % 10), nil
}

// Keys returns the full key chord for slot, digit first as gohook expects.
func (h *Hook) Keys(slot int) ([]string, error) {
	key, err := SlotKey(slot)
	if err != nil {
		return nil, err
	}
	return append([]string{key}, h.modifiers...), nil
}

func (h *Hook) Register(slot int, fn func()) error {
	keys, err := h.Keys(slot)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if slices.Contains(h.slots, slot) {
		return fmt.Errorf("quick slot %d already registered", slot)
	}
	h.slots = append(h.slots, slot)

	hook.Register(hook.KeyDown, keys, func(hook.Event) {
		slog.Debug("Hotkey pressed", "slot", slot)
		h.dispatch(fn)
	})
	slog.Debug("Hotkey registered", "slot", slot, "keys", keys)
	return nil
}

// Run processes keyboard events until ctx is cancelled.
func (h *Hook) Run(ctx context.Context) {
	events := hook.Start()
	done := hook.Process(events)
	slog.Info("Hotkey hook started", "modifiers", h.modifiers)

	select {
	case <-ctx.Done():
		hook.End()
	case <-done:
	}
	slog.Info("Hotkey hook stopped")
}
