package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a stored setting value. It is one of:
//   - bool    (toggle fields)
//   - string  (every other field, quick-slot labels)
//   - Snapshot (saved profiles)
//
// A nil Value means "absent".
type Value = any

// Snapshot maps field ids to field values at a point in time.
type Snapshot map[string]Value

// Setting is a single key/value pair held by the store.
type Setting struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// Change is broadcast after every successful write or removal.
type Change struct {
	Key      string `json:"key"`
	NewValue Value  `json:"newValue"` // nil on removal
	OldValue Value  `json:"oldValue"` // nil when the key did not exist
	Origin   string `json:"origin"`   // id of the adapter that performed the write
}

// Lookup returns the value for key, or false when the snapshot has no entry.
// A nil snapshot behaves as an empty one.
func (s Snapshot) Lookup(key string) (Value, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Clone returns a shallow copy.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Normalize converts decoded JSON into the Value domain: objects become
// Snapshots (recursively), numbers become their decimal string.
func Normalize(v any) Value {
	switch t := v.(type) {
	case nil, bool, string, Snapshot:
		return t
	case map[string]any:
		out := make(Snapshot, len(t))
		for k, inner := range t {
			out[k] = Normalize(inner)
		}
		return out
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

// AsSnapshot reports whether v is object-shaped and returns it as a Snapshot.
func AsSnapshot(v Value) (Snapshot, bool) {
	switch t := Normalize(v).(type) {
	case Snapshot:
		return t, true
	default:
		return nil, false
	}
}

// AsString renders v the way a text input would display it.
func AsString(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(Normalize(t))
	}
}

// AsBool interprets v as a toggle state.
func AsBool(v Value) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	default:
		return false
	}
}

// Encode serialises a value for durable storage.
func Encode(v Value) ([]byte, error) {
	return json.Marshal(v)
}

// Decode parses a stored value back into the Value domain.
func Decode(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return Normalize(raw), nil
}
