package config

import (
	"context"
	"strconv"

	"reticlego/pkg/model"
)

// StateReader is the store access the provider needs.
type StateReader interface {
	Get(ctx context.Context, key string) (model.Value, bool)
}

// Provider bridges static Config and the persistent settings store.
type Provider struct {
	base  *Config
	store StateReader
}

// NewProvider creates a new Provider.
func NewProvider(base *Config, st StateReader) *Provider {
	return &Provider{
		base:  base,
		store: st,
	}
}

func (p *Provider) AppConfig() *Config { return p.base }

// ViewportSize returns the render window size: the window form's stored
// values when set, the overlay config otherwise.
func (p *Provider) ViewportSize(ctx context.Context) (width, height float64) {
	return p.getFloat64(ctx, KeyWindowWidth, p.base.Overlay.Width),
		p.getFloat64(ctx, KeyWindowHeight, p.base.Overlay.Height)
}

// WindowOffset returns the stored window position.
func (p *Provider) WindowOffset(ctx context.Context) (x, y int) {
	return p.getInt(ctx, KeyWindowOffsetX, 0), p.getInt(ctx, KeyWindowOffsetY, 0)
}

// OverlayEnabled reports whether the reticle should be drawn at all.
func (p *Provider) OverlayEnabled(ctx context.Context) bool {
	return p.getBool(ctx, KeyOverlayEnabled, true)
}

// OverlayOpacity returns the render window opacity in [0,1].
func (p *Provider) OverlayOpacity(ctx context.Context) float64 {
	o := p.getFloat64(ctx, KeyOverlayOpacity, 1)
	switch {
	case o < 0:
		return 0
	case o > 1:
		return 1
	}
	return o
}

// --- Helpers ---

func (p *Provider) getString(ctx context.Context, key, fallback string) string {
	if p.store != nil {
		if val, ok := p.store.Get(ctx, key); ok {
			if s := model.AsString(val); s != "" {
				return s
			}
		}
	}
	return fallback
}

func (p *Provider) getInt(ctx context.Context, key string, fallback int) int {
	if i, err := strconv.Atoi(p.getString(ctx, key, "")); err == nil {
		return i
	}
	return fallback
}

func (p *Provider) getFloat64(ctx context.Context, key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(p.getString(ctx, key, ""), 64); err == nil {
		return f
	}
	return fallback
}

func (p *Provider) getBool(ctx context.Context, key string, fallback bool) bool {
	if p.store != nil {
		if val, ok := p.store.Get(ctx, key); ok {
			return model.AsBool(val)
		}
	}
	return fallback
}
