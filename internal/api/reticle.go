package api

import (
	"net/http"

	"reticlego/pkg/reticle"
	"reticlego/pkg/reticle/svg"
)

// ReticleHandler exposes the rendered reticle and the viewport.
type ReticleHandler struct {
	run      Runner
	renderer *reticle.Renderer
	surface  *svg.Surface
}

// NewReticleHandler creates a new ReticleHandler.
func NewReticleHandler(run Runner, r *reticle.Renderer, s *svg.Surface) *ReticleHandler {
	return &ReticleHandler{run: run, renderer: r, surface: s}
}

// ReticleResponse describes the last render.
type ReticleResponse struct {
	Geometry reticle.Geometry `json:"geometry"`
	Viewport reticle.Size     `json:"viewport"`
	State    string           `json:"state"`
	PeriodMS int64            `json:"period_ms"`
	Rotation float64          `json:"rotation"`
}

func (h *ReticleHandler) state() ReticleResponse {
	st, period := h.renderer.State()
	return ReticleResponse{
		Geometry: h.renderer.Geometry(),
		Viewport: h.surface.Size(),
		State:    st.String(),
		PeriodMS: period.Milliseconds(),
		Rotation: h.surface.Rotation(),
	}
}

// HandleState returns geometry and animation state.
func (h *ReticleHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	var resp ReticleResponse
	if err := h.run.Do(r.Context(), func() error {
		resp = h.state()
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSVG returns the rendered SVG document.
func (h *ReticleHandler) HandleSVG(w http.ResponseWriter, r *http.Request) {
	var doc []byte
	if err := h.run.Do(r.Context(), func() error {
		var err error
		doc, err = h.surface.Bytes()
		return err
	}); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(doc)
}

// HandleViewport resizes the surface and re-renders.
func (h *ReticleHandler) HandleViewport(w http.ResponseWriter, r *http.Request) {
	var size reticle.Size
	if err := decodeBody(r, &size); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if size.Width <= 0 || size.Height <= 0 {
		http.Error(w, "width and height must be positive", http.StatusBadRequest)
		return
	}
	var resp ReticleResponse
	if err := h.run.Do(r.Context(), func() error {
		if h.surface.Resize(size) {
			h.renderer.Refresh()
		}
		resp = h.state()
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
