package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotKey(t *testing.T) {
	tests := []struct {
		slot    int
		want    string
		wantErr bool
	}{
		{1, "1", false},
		{9, "9", false},
		{10, "0", false},
		{0, "", true},
		{11, "", true},
	}
	for _, tt := range tests {
		got, err := SlotKey(tt.slot)
		if tt.wantErr {
			assert.Error(t, err, tt.slot)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestKeys(t *testing.T) {
	h := NewHook([]string{"ctrl", "alt"}, nil)
	keys, err := h.Keys(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "ctrl", "alt"}, keys)

	_, err = h.Keys(12)
	assert.Error(t, err)
}

func TestRegister_RejectsOutOfRange(t *testing.T) {
	h := NewHook(nil, nil)
	assert.Error(t, h.Register(0, func() {}))
}
