package config

import "strconv"

// Reticle field ids. They double as store keys.
const (
	KeyCircleEnabled   = "circleEnabled"
	KeyCircleRadius    = "circleRadius"
	KeyCircleThickness = "circleThickness"
	KeyCircleColor     = "circleColor"
	KeyDotEnabled      = "dotEnabled"
	KeyDotRadius       = "dotRadius"
	KeyDotColor        = "dotColor"
	KeyCrossEnabled    = "crossEnabled"
	KeyCrossColor      = "crossColor"
	KeyCrossLength     = "crossLength"
	KeyCrossSpread     = "crossSpread"
	KeyCrossThickness  = "crossThickness"
	KeyCrossSpinPeriod = "crossSpinPeriod"
)

// General and window field ids.
const (
	KeyOverlayEnabled = "overlayEnabled"
	KeyOverlayOpacity = "overlayOpacity"
	KeyHideInMenus    = "hideInMenus"
	KeyWindowWidth    = "windowWidth"
	KeyWindowHeight   = "windowHeight"
	KeyWindowOffsetX  = "windowOffsetX"
	KeyWindowOffsetY  = "windowOffsetY"
)

// Page elements outside the profile forms.
const (
	ElemProfileName  = "profileName"
	ElemDataTransfer = "dataTransfer"
	ElemLoadButton   = "loadButton"
	ElemSaveButton   = "saveButton"
	ElemDeleteButton = "deleteButton"
)

// SavedPrefix namespaces profile snapshots in the store.
const SavedPrefix = "saved_"

// QuickSlotCount is the number of hotkey-addressable profile shortcuts.
const QuickSlotCount = 10

// QuickSlotKey returns the store key / element id of slot n (1-based).
func QuickSlotKey(n int) string {
	return "quickSlot" + strconv.Itoa(n)
}

// Form names.
const (
	FormReticle = "reticle"
	FormGeneral = "general"
	FormWindow  = "window"
)

// FieldSpec describes one bound input.
type FieldSpec struct {
	ID   string
	Form string
	Kind string // checkbox, number, color, text
}

// Fields lists every profile field in page order.
var Fields = []FieldSpec{
	{KeyCircleEnabled, FormReticle, "checkbox"},
	{KeyCircleRadius, FormReticle, "number"},
	{KeyCircleThickness, FormReticle, "number"},
	{KeyCircleColor, FormReticle, "color"},
	{KeyDotEnabled, FormReticle, "checkbox"},
	{KeyDotRadius, FormReticle, "number"},
	{KeyDotColor, FormReticle, "color"},
	{KeyCrossEnabled, FormReticle, "checkbox"},
	{KeyCrossColor, FormReticle, "color"},
	{KeyCrossLength, FormReticle, "number"},
	{KeyCrossSpread, FormReticle, "number"},
	{KeyCrossThickness, FormReticle, "number"},
	{KeyCrossSpinPeriod, FormReticle, "number"},

	{KeyOverlayEnabled, FormGeneral, "checkbox"},
	{KeyOverlayOpacity, FormGeneral, "number"},
	{KeyHideInMenus, FormGeneral, "checkbox"},

	{KeyWindowWidth, FormWindow, "number"},
	{KeyWindowHeight, FormWindow, "number"},
	{KeyWindowOffsetX, FormWindow, "number"},
	{KeyWindowOffsetY, FormWindow, "number"},
}

// FormNames lists the profile forms in page order.
var FormNames = []string{FormReticle, FormGeneral, FormWindow}
