package form

// Form is an ordered group of elements.
type Form struct {
	Name   string
	fields []Field
}

// NewForm creates a form holding fields in order.
func NewForm(name string, fields ...Field) *Form {
	return &Form{Name: name, fields: fields}
}

// Add appends a field.
func (f *Form) Add(field Field) {
	f.fields = append(f.fields, field)
}

// Fields returns the form's elements in order.
func (f *Form) Fields() []Field {
	return f.fields
}

// Document is the page: profile forms plus standalone elements, all
// addressable by id.
type Document struct {
	forms    []*Form
	elements map[string]Field
	order    []string
}

// NewDocument creates a document over the given profile forms.
func NewDocument(forms ...*Form) *Document {
	d := &Document{elements: make(map[string]Field)}
	for _, f := range forms {
		d.AddForm(f)
	}
	return d
}

// AddForm registers a form and indexes its fields.
func (d *Document) AddForm(f *Form) {
	d.forms = append(d.forms, f)
	for _, field := range f.fields {
		d.index(field)
	}
}

// Add registers an element that is not part of any profile form.
func (d *Document) Add(field Field) {
	d.index(field)
}

func (d *Document) index(field Field) {
	id := field.ID()
	if id == "" {
		return
	}
	if _, ok := d.elements[id]; !ok {
		d.order = append(d.order, id)
	}
	d.elements[id] = field
}

// Element resolves an element by id.
func (d *Document) Element(id string) (Field, bool) {
	f, ok := d.elements[id]
	return f, ok
}

// Forms returns the profile forms.
func (d *Document) Forms() []*Form {
	return d.forms
}

// ForEachField calls fn for every profile-form field that has an id, form
// by form, in declaration order.
func (d *Document) ForEachField(fn func(Field)) {
	for _, f := range d.forms {
		for _, field := range f.fields {
			if field.ID() != "" {
				fn(field)
			}
		}
	}
}

// IDs lists every addressable element id in registration order.
func (d *Document) IDs() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
