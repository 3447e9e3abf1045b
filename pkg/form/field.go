// Package form models the settings page: input elements grouped into forms,
// a document that resolves elements by id, and the binder that moves values
// between elements and the store.
package form

import (
	"slices"

	"reticlego/pkg/model"
)

// Kind selects how an element represents its value.
type Kind string

const (
	KindCheckbox Kind = "checkbox" // bool
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindColor    Kind = "color"
	KindSelect   Kind = "select"
	KindTextArea Kind = "textarea"
	KindButton   Kind = "button"
)

// Field is an input element. Implementations are owned by the event loop.
type Field interface {
	ID() string
	Kind() Kind
	// Value returns the native value: bool for checkboxes, string otherwise.
	Value() model.Value
	// SetValue coerces and applies v. When notify is true and the value
	// changed, the element raises its native change signal.
	SetValue(v model.Value, notify bool) (changed bool)
	// OnChange registers a native change handler.
	OnChange(fn func())
	Disabled() bool
	SetDisabled(disabled bool)
}

// Input is the in-process Field implementation.
type Input struct {
	id       string
	kind     Kind
	boolVal  bool
	strVal   string
	options  []string
	disabled bool
	selected bool
	handlers []func()
}

// NewInput creates an element with an initial value that does not fire.
func NewInput(id string, kind Kind, initial model.Value) *Input {
	in := &Input{id: id, kind: kind}
	in.assign(initial)
	return in
}

func (in *Input) ID() string { return in.id }

func (in *Input) Kind() Kind { return in.kind }

func (in *Input) Value() model.Value {
	if in.kind == KindCheckbox {
		return in.boolVal
	}
	return in.strVal
}

func (in *Input) SetValue(v model.Value, notify bool) bool {
	changed := in.assign(v)
	if changed {
		in.selected = false
		if notify {
			in.fire()
		}
	}
	return changed
}

// Edit simulates the user changing the element.
func (in *Input) Edit(v model.Value) bool {
	return in.SetValue(v, true)
}

func (in *Input) OnChange(fn func()) {
	in.handlers = append(in.handlers, fn)
}

func (in *Input) Disabled() bool { return in.disabled }

func (in *Input) SetDisabled(disabled bool) { in.disabled = disabled }

// Select marks the element's text as selected for copying.
func (in *Input) Select() { in.selected = true }

// Selected reports whether Select was called since the last value change.
func (in *Input) Selected() bool { return in.selected }

// SetOptions replaces a select element's options. A current value that is
// no longer an option resets to the first option (or "").
func (in *Input) SetOptions(opts []string) {
	in.options = slices.Clone(opts)
	if !slices.Contains(in.options, in.strVal) {
		in.strVal = ""
		if len(in.options) > 0 {
			in.strVal = in.options[0]
		}
	}
}

// Options returns a select element's options.
func (in *Input) Options() []string {
	return slices.Clone(in.options)
}

func (in *Input) assign(v model.Value) bool {
	if in.kind == KindCheckbox {
		b := model.AsBool(v)
		if b == in.boolVal {
			return false
		}
		in.boolVal = b
		return true
	}
	s := model.AsString(v)
	if in.kind == KindSelect && s != "" && !slices.Contains(in.options, s) {
		s = ""
	}
	if s == in.strVal {
		return false
	}
	in.strVal = s
	return true
}

func (in *Input) fire() {
	for _, h := range in.handlers {
		h()
	}
}
