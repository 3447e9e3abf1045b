package reticle

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"reticlego/pkg/config"
	"reticlego/pkg/model"
)

// CircleConfig is the outer ring.
type CircleConfig struct {
	Enabled   bool
	Radius    float64
	Thickness float64
	Color     string
}

// DotConfig is the centre dot.
type DotConfig struct {
	Enabled bool
	Radius  float64
	Color   string
}

// CrossConfig is the four-bar cross.
type CrossConfig struct {
	Enabled    bool
	Color      string
	Length     float64
	Spread     float64
	Thickness  float64
	SpinPeriod time.Duration // 0 disables spinning
}

// OverlayConfig holds the whole-surface toggles from the general form.
type OverlayConfig struct {
	Enabled bool
	Opacity float64
}

// Config is everything a render needs.
type Config struct {
	Circle  CircleConfig
	Dot     DotConfig
	Cross   CrossConfig
	Overlay OverlayConfig
}

// ParseConfig reads a snapshot of stored settings. Values are not validated:
// unparsable numbers become 0 and missing toggles are off, except the overlay
// toggle and opacity which default to visible.
func ParseConfig(snap model.Snapshot) Config {
	return Config{
		Circle: CircleConfig{
			Enabled:   flag(snap, config.KeyCircleEnabled),
			Radius:    number(snap, config.KeyCircleRadius),
			Thickness: number(snap, config.KeyCircleThickness),
			Color:     model.AsString(snap[config.KeyCircleColor]),
		},
		Dot: DotConfig{
			Enabled: flag(snap, config.KeyDotEnabled),
			Radius:  number(snap, config.KeyDotRadius),
			Color:   model.AsString(snap[config.KeyDotColor]),
		},
		Cross: CrossConfig{
			Enabled:    flag(snap, config.KeyCrossEnabled),
			Color:      model.AsString(snap[config.KeyCrossColor]),
			Length:     number(snap, config.KeyCrossLength),
			Spread:     number(snap, config.KeyCrossSpread),
			Thickness:  number(snap, config.KeyCrossThickness),
			SpinPeriod: time.Duration(ParsePeriod(model.AsString(snap[config.KeyCrossSpinPeriod]))) * time.Millisecond,
		},
		Overlay: OverlayConfig{
			Enabled: flagDefault(snap, config.KeyOverlayEnabled, true),
			Opacity: numberDefault(snap, config.KeyOverlayOpacity, 1),
		},
	}
}

// Keys lists the store keys ParseConfig reads.
var Keys = []string{
	config.KeyCircleEnabled, config.KeyCircleRadius, config.KeyCircleThickness, config.KeyCircleColor,
	config.KeyDotEnabled, config.KeyDotRadius, config.KeyDotColor,
	config.KeyCrossEnabled, config.KeyCrossColor, config.KeyCrossLength, config.KeyCrossSpread,
	config.KeyCrossThickness, config.KeyCrossSpinPeriod,
	config.KeyOverlayEnabled, config.KeyOverlayOpacity,
}

// MaxPeriodMS is the longest spin period, in milliseconds, a time.Duration
// can hold. Longer periods are clamped to it.
const MaxPeriodMS = math.MaxInt64 / int64(time.Millisecond)

// ParsePeriod reads the leading integer of s in milliseconds, ignoring
// leading spaces and any trailing text. No digits, or a negative value,
// yields 0; values above MaxPeriodMS yield MaxPeriodMS.
func ParsePeriod(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	if s[0] == '-' {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	// ParseInt returns MaxInt64 on overflow.
	return min(n, MaxPeriodMS)
}

func flag(snap model.Snapshot, key string) bool {
	return model.AsBool(snap[key])
}

func flagDefault(snap model.Snapshot, key string, fallback bool) bool {
	if v, ok := snap.Lookup(key); ok {
		return model.AsBool(v)
	}
	return fallback
}

func number(snap model.Snapshot, key string) float64 {
	return numberDefault(snap, key, 0)
}

func numberDefault(snap model.Snapshot, key string, fallback float64) float64 {
	v, ok := snap.Lookup(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(model.AsString(v)), 64)
	if err != nil {
		return 0
	}
	return f
}
