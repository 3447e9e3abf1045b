package api

import (
	"net/http"

	"reticlego/pkg/config"
)

// WindowHandler reports where and how the overlay window should be shown.
type WindowHandler struct {
	run  Runner
	prov *config.Provider
}

// NewWindowHandler creates a new WindowHandler.
func NewWindowHandler(run Runner, prov *config.Provider) *WindowHandler {
	return &WindowHandler{run: run, prov: prov}
}

// WindowResponse is the overlay window placement.
type WindowResponse struct {
	Title   string  `json:"title"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX int     `json:"offset_x"`
	OffsetY int     `json:"offset_y"`
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
}

// HandleWindow returns the window placement from the stored window form.
func (h *WindowHandler) HandleWindow(w http.ResponseWriter, r *http.Request) {
	var resp WindowResponse
	if err := h.run.Do(r.Context(), func() error {
		ctx := r.Context()
		resp.Title = h.prov.AppConfig().Overlay.Title
		resp.Width, resp.Height = h.prov.ViewportSize(ctx)
		resp.OffsetX, resp.OffsetY = h.prov.WindowOffset(ctx)
		resp.Enabled = h.prov.OverlayEnabled(ctx)
		resp.Opacity = h.prov.OverlayOpacity(ctx)
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
