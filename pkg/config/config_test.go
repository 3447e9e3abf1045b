package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reticlego/pkg/model"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		content       string // empty: no file
		validate      func(*testing.T, *Config)
		expectedError bool
	}{
		{
			name: "NewFile_Defaults",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost:1921", cfg.Server.Address)
				assert.Equal(t, 15*time.Second, time.Duration(cfg.Server.ReadTimeout))
				assert.Equal(t, "#00ff00", cfg.Defaults.Reticle[KeyCircleColor])
			},
		},
		{
			name:    "ExistingFile_Override",
			content: "server:\n  address: 127.0.0.1:9000\ndefaults:\n  reticle:\n    circleColor: \"#123456\"\n",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
				assert.Equal(t, "#123456", cfg.Defaults.Reticle[KeyCircleColor])
				// Keys not in the file keep their defaults.
				assert.Equal(t, "10", cfg.Defaults.Reticle[KeyCrossLength])
				assert.Equal(t, "./data/reticle.db", cfg.DB.Path)
			},
		},
		{
			name:          "InvalidModifier",
			content:       "hotkeys:\n  modifiers: [hyper]\n",
			expectedError: true,
		},
		{
			name:          "BrokenYAML",
			content:       "server: [\n",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "configs", "reticle.yaml")
			if tt.content != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			cfg, err := Load(path)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)

			_, statErr := os.Stat(path)
			assert.NoError(t, statErr, "config file should exist after Load")
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RETICLE_DB_PATH", ":memory:")
	t.Setenv("RETICLE_ADDRESS", "localhost:0")

	cfg, err := Load(filepath.Join(t.TempDir(), "reticle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DB.Path)
	assert.Equal(t, "localhost:0", cfg.Server.Address)
}

func TestSave_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reticle.yaml")
	require.NoError(t, Save(path, DefaultConfig()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Reticle Overlay Configuration"))
	assert.Contains(t, string(content), "# Options: ctrl, alt, shift, cmd")
}

func TestGenerateDefault_KeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reticle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("custom: true\n"), 0o644))
	require.NoError(t, GenerateDefault(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom: true\n", string(content))
}

func TestDefaultsLayers(t *testing.T) {
	layers := DefaultConfig().Defaults.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, true, layers[0][KeyCircleEnabled])
	assert.Equal(t, "0", layers[0][KeyCrossSpinPeriod])
	assert.Equal(t, false, layers[1][KeyHideInMenus])
	assert.Equal(t, "1920", layers[2][KeyWindowWidth])

	// YAML numbers become strings, like the values the form reports.
	d := DefaultsConfig{Window: map[string]any{KeyWindowWidth: 800}}
	assert.Equal(t, model.Snapshot{KeyWindowWidth: "800"}, d.Layers()[2])
	assert.Equal(t, model.Snapshot{}, d.Layers()[0])
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, "quickSlot1", QuickSlotKey(1))
	assert.Equal(t, "quickSlot10", QuickSlotKey(QuickSlotCount))

	seen := make(map[string]bool)
	defaults := DefaultConfig().Defaults
	for _, f := range Fields {
		assert.False(t, seen[f.ID], "duplicate field %s", f.ID)
		seen[f.ID] = true
		assert.Contains(t, FormNames, f.Form)
		_, inReticle := defaults.Reticle[f.ID]
		_, inGeneral := defaults.General[f.ID]
		_, inWindow := defaults.Window[f.ID]
		assert.True(t, inReticle || inGeneral || inWindow, "field %s has no default", f.ID)
	}
}
