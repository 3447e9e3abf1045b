package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"reticlego/pkg/model"
)

// Config holds the application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	DB       DBConfig       `yaml:"db"`
	Server   ServerConfig   `yaml:"server"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Bridge   BridgeConfig   `yaml:"bridge"`
	Hotkeys  HotkeyConfig   `yaml:"hotkeys"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
	Trace    bool        `yaml:"trace"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"` // ":memory:" keeps settings for the session only
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string   `yaml:"address"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// OverlayConfig holds render surface settings.
type OverlayConfig struct {
	Width  float64 `yaml:"width"`  // initial viewport width until the window reports its size
	Height float64 `yaml:"height"` // initial viewport height
	Title  string  `yaml:"title"`
}

// BridgeConfig holds settings for following another process's store.
type BridgeConfig struct {
	URL            string   `yaml:"url"` // ws://host/api/events; empty disables
	ReconnectDelay Duration `yaml:"reconnect_delay"`
}

// HotkeyConfig holds global hotkey settings for quick slots.
type HotkeyConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Modifiers []string `yaml:"modifiers"` // held together with the slot digit
}

// DefaultsConfig holds the three reset layers, applied in this order.
type DefaultsConfig struct {
	Reticle map[string]any `yaml:"reticle"`
	General map[string]any `yaml:"general"`
	Window  map[string]any `yaml:"window"`
}

// Layers returns the reset layers in application order: reticle, general, window.
func (d DefaultsConfig) Layers() []model.Snapshot {
	return []model.Snapshot{toSnapshot(d.Reticle), toSnapshot(d.General), toSnapshot(d.Window)}
}

func toSnapshot(m map[string]any) model.Snapshot {
	s, ok := model.AsSnapshot(m)
	if !ok {
		return model.Snapshot{}
	}
	return s
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		DB: DBConfig{
			Path: "./data/reticle.db",
		},
		Server: ServerConfig{
			Address:      "localhost:1921",
			ReadTimeout:  Duration(15 * time.Second),
			WriteTimeout: Duration(15 * time.Second),
		},
		Overlay: OverlayConfig{
			Width:  1920,
			Height: 1080,
			Title:  "Reticle",
		},
		Bridge: BridgeConfig{
			ReconnectDelay: Duration(2 * time.Second),
		},
		Hotkeys: HotkeyConfig{
			Enabled:   true,
			Modifiers: []string{"ctrl", "alt"},
		},
		Defaults: DefaultsConfig{
			Reticle: map[string]any{
				KeyCircleEnabled:   true,
				KeyCircleRadius:    "15",
				KeyCircleThickness: "2",
				KeyCircleColor:     "#00ff00",
				KeyDotEnabled:      true,
				KeyDotRadius:       "2",
				KeyDotColor:        "#ff0000",
				KeyCrossEnabled:    true,
				KeyCrossColor:      "#00ff00",
				KeyCrossLength:     "10",
				KeyCrossSpread:     "5",
				KeyCrossThickness:  "2",
				KeyCrossSpinPeriod: "0",
			},
			General: map[string]any{
				KeyOverlayEnabled: true,
				KeyOverlayOpacity: "1",
				KeyHideInMenus:    false,
			},
			Window: map[string]any{
				KeyWindowWidth:   "1920",
				KeyWindowHeight:  "1080",
				KeyWindowOffsetX: "0",
				KeyWindowOffsetY: "0",
			},
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT save back to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		applyEnv(cfg)
		return cfg, validate(cfg)
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	applyEnv(cfg)
	return cfg, validate(cfg)
}

// applyEnv lets the environment override deployment paths without touching the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("RETICLE_DB_PATH"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("RETICLE_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("RETICLE_BRIDGE_URL"); v != "" {
		cfg.Bridge.URL = v
	}
}

var modifierRe = regexp.MustCompile(`^(ctrl|alt|shift|cmd)$`)

func validate(cfg *Config) error {
	if cfg.Overlay.Width < 0 || cfg.Overlay.Height < 0 {
		return fmt.Errorf("invalid overlay size %gx%g", cfg.Overlay.Width, cfg.Overlay.Height)
	}
	for _, m := range cfg.Hotkeys.Modifiers {
		if !modifierRe.MatchString(m) {
			return fmt.Errorf("invalid hotkey modifier '%s': must be one of ctrl, alt, shift, cmd", m)
		}
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Reticle Overlay Configuration
# -----------------------------
# Durations accept ns, us, ms, s, m, h, d (day), w (week).
# defaults.* are the layers "Reset to defaults" applies, in order
# reticle, general, window.

`)
	data = append(header, data...)

	reMods := regexp.MustCompile(`(?m)^(\s+)modifiers:`)
	data = reMods.ReplaceAll(data, []byte("${1}# Options: ctrl, alt, shift, cmd (slot digit 1-9, 0 for slot 10)\n${1}modifiers:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
