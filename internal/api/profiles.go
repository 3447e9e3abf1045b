package api

import (
	"fmt"
	"net/http"
	"strconv"

	"reticlego/pkg/config"
	"reticlego/pkg/profile"
	"reticlego/pkg/settings"
)

// ProfileHandler exposes profile management and quick slots.
type ProfileHandler struct {
	run  Runner
	ctrl *settings.Controller
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(run Runner, ctrl *settings.Controller) *ProfileHandler {
	return &ProfileHandler{run: run, ctrl: ctrl}
}

// ProfilesResponse is the selector state.
type ProfilesResponse struct {
	Labels   []string `json:"labels"`
	Selected string   `json:"selected"`
	Enabled  bool     `json:"enabled"`
}

// LabelRequest names a profile.
type LabelRequest struct {
	Label string `json:"label"`
}

func (h *ProfileHandler) state() ProfilesResponse {
	sel := h.ctrl.Profiles().Selector()
	labels := sel.Labels()
	if labels == nil {
		labels = []string{}
	}
	return ProfilesResponse{Labels: labels, Selected: sel.Selected(), Enabled: sel.Enabled()}
}

// do runs fn on the loop and answers with the selector state.
func (h *ProfileHandler) do(w http.ResponseWriter, r *http.Request, status int, fn func() error) {
	var resp ProfilesResponse
	if err := h.run.Do(r.Context(), func() error {
		if err := fn(); err != nil {
			return err
		}
		resp = h.state()
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, resp)
}

// HandleList returns the profile list and selection.
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, http.StatusOK, func() error { return nil })
}

// HandleCreate saves the current fields under a new label.
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req LabelRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.do(w, r, http.StatusCreated, func() error { return h.ctrl.Create(r.Context(), req.Label) })
}

// HandleSelect changes the selected profile.
func (h *ProfileHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req LabelRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.do(w, r, http.StatusOK, func() error { return h.ctrl.SelectProfile(req.Label) })
}

// HandleLoad applies the selected profile.
func (h *ProfileHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, http.StatusOK, func() error { return h.ctrl.Load(r.Context()) })
}

// HandleSave overwrites the selected profile with the current fields.
func (h *ProfileHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, http.StatusOK, func() error { return h.ctrl.Save(r.Context()) })
}

// HandleDelete removes the named profile.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("label")
	h.do(w, r, http.StatusOK, func() error { return h.ctrl.RemoveLabel(r.Context(), label) })
}

// HandleQuickSlots lists quick-slot assignments.
func (h *ProfileHandler) HandleQuickSlots(w http.ResponseWriter, r *http.Request) {
	var slots []profile.QuickSlot
	if err := h.run.Do(r.Context(), func() error {
		slots = h.ctrl.QuickSlots(r.Context())
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// HandleActivateQuickSlot loads the profile assigned to slot n.
func (h *ProfileHandler) HandleActivateQuickSlot(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 || n > config.QuickSlotCount {
		http.Error(w, fmt.Sprintf("quick slot must be 1-%d", config.QuickSlotCount), http.StatusBadRequest)
		return
	}
	h.do(w, r, http.StatusOK, func() error { return h.ctrl.OnQuickSlot(r.Context(), config.QuickSlotKey(n)) })
}
