package settings

import (
	"reticlego/pkg/config"
	"reticlego/pkg/form"
)

// Page is the settings document together with handles on the elements the
// controller drives directly.
type Page struct {
	Doc          *form.Document
	ProfileName  *form.Input
	DataTransfer *form.Input
	LoadButton   *form.Input
	SaveButton   *form.Input
	DeleteButton *form.Input
	QuickSlots   []*form.Input
}

// NewPage builds the profile forms from config.Fields and adds the profile
// selector, the import/export field, the profile buttons and one text input
// per quick slot.
func NewPage() *Page {
	forms := make(map[string]*form.Form, len(config.FormNames))
	var ordered []*form.Form
	for _, name := range config.FormNames {
		f := form.NewForm(name)
		forms[name] = f
		ordered = append(ordered, f)
	}
	for _, spec := range config.Fields {
		forms[spec.Form].Add(form.NewInput(spec.ID, form.Kind(spec.Kind), nil))
	}

	p := &Page{
		Doc:          form.NewDocument(ordered...),
		ProfileName:  form.NewInput(config.ElemProfileName, form.KindSelect, ""),
		DataTransfer: form.NewInput(config.ElemDataTransfer, form.KindTextArea, ""),
		LoadButton:   form.NewInput(config.ElemLoadButton, form.KindButton, nil),
		SaveButton:   form.NewInput(config.ElemSaveButton, form.KindButton, nil),
		DeleteButton: form.NewInput(config.ElemDeleteButton, form.KindButton, nil),
	}
	for _, el := range []*form.Input{p.ProfileName, p.DataTransfer, p.LoadButton, p.SaveButton, p.DeleteButton} {
		p.Doc.Add(el)
	}
	for i := 1; i <= config.QuickSlotCount; i++ {
		in := form.NewInput(config.QuickSlotKey(i), form.KindText, "")
		p.QuickSlots = append(p.QuickSlots, in)
		p.Doc.Add(in)
	}
	return p
}
