package profile

import (
	"reticlego/pkg/form"
)

// OptionList is a select element whose options can be replaced.
type OptionList interface {
	form.Field
	SetOptions(opts []string)
	Options() []string
}

// Selector is the profile drop-down plus the controls that only make sense
// when at least one profile exists.
type Selector struct {
	list        OptionList
	affordances []form.Field
}

// NewSelector wraps list. The list itself is always one of the affordances.
func NewSelector(list OptionList, affordances ...form.Field) *Selector {
	return &Selector{list: list, affordances: append([]form.Field{list}, affordances...)}
}

// Selected returns the currently selected label.
func (s *Selector) Selected() string {
	v, _ := s.list.Value().(string)
	return v
}

// Select changes the selection without raising a change signal.
func (s *Selector) Select(label string) {
	s.list.SetValue(label, false)
}

// Labels returns the listed labels in display order.
func (s *Selector) Labels() []string {
	return s.list.Options()
}

// Enabled reports whether profile-dependent controls are usable.
func (s *Selector) Enabled() bool {
	return !s.list.Disabled()
}

func (s *Selector) setLabels(labels []string) {
	s.list.SetOptions(labels)
}

func (s *Selector) setEnabled(enabled bool) {
	for _, f := range s.affordances {
		f.SetDisabled(!enabled)
	}
}
