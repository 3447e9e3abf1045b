package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"Nil", nil, nil},
		{"Bool", true, true},
		{"String", "red", "red"},
		{"Float", 12.5, "12.5"},
		{"Integral float", float64(20), "20"},
		{"Object", map[string]any{"a": "x", "b": false}, Snapshot{"a": "x", "b": false}},
		{"Nested", map[string]any{"p": map[string]any{"n": 3.0}}, Snapshot{"p": Snapshot{"n": "3"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSnapshotLookup(t *testing.T) {
	var empty Snapshot
	_, ok := empty.Lookup("x")
	assert.False(t, ok, "nil snapshot has no entries")

	s := Snapshot{"a": "1", "b": nil}
	v, ok := s.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = s.Lookup("b")
	assert.False(t, ok, "nil values count as absent")
}

func TestAsSnapshot(t *testing.T) {
	_, ok := AsSnapshot([]any{1.0, 2.0})
	assert.False(t, ok)
	_, ok = AsSnapshot("text")
	assert.False(t, ok)

	s, ok := AsSnapshot(map[string]any{"k": true})
	require.True(t, ok)
	assert.Equal(t, true, s["k"])
}

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(Snapshot{"circleEnabled": true, "circleColor": "#ff0000"})
	require.NoError(t, err)

	v, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{"circleEnabled": true, "circleColor": "#ff0000"}, v)

	_, err = Decode([]byte("{broken"))
	assert.Error(t, err)
}

func TestAsBoolAndString(t *testing.T) {
	assert.True(t, AsBool(true))
	assert.True(t, AsBool("true"))
	assert.False(t, AsBool("yes"))
	assert.Equal(t, "false", AsString(false))
	assert.Equal(t, "", AsString(nil))
}
