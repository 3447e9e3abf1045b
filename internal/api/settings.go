package api

import (
	"io"
	"net/http"

	"reticlego/pkg/model"
	"reticlego/pkg/settings"
)

// SettingsHandler exposes the settings page: field edits, import/export and
// reset.
type SettingsHandler struct {
	run  Runner
	ctrl *settings.Controller
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(run Runner, ctrl *settings.Controller) *SettingsHandler {
	return &SettingsHandler{run: run, ctrl: ctrl}
}

// HandleFields returns every profile field value.
func (h *SettingsHandler) HandleFields(w http.ResponseWriter, r *http.Request) {
	var snap model.Snapshot
	if err := h.run.Do(r.Context(), func() error {
		snap = h.ctrl.Fields()
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// FieldEdit is the body of a field edit.
type FieldEdit struct {
	Value any `json:"value"`
}

// HandleEditField applies a user edit to one element.
func (h *SettingsHandler) HandleEditField(w http.ResponseWriter, r *http.Request) {
	var req FieldEdit
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	var changed bool
	if err := h.run.Do(r.Context(), func() error {
		var err error
		changed, err = h.ctrl.Edit(id, req.Value)
		return err
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

// HandleExport returns the exported settings text.
func (h *SettingsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var text string
	if err := h.run.Do(r.Context(), func() error {
		var err error
		text, err = h.ctrl.ExportSettings()
		return err
	}); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, text)
}

// HandleImport applies the request body as exported settings text.
func (h *SettingsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	var snap model.Snapshot
	if err := h.run.Do(r.Context(), func() error {
		if err := h.ctrl.ImportSettings(r.Context(), string(body)); err != nil {
			return err
		}
		snap = h.ctrl.Fields()
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleReset restores the default layers.
func (h *SettingsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var snap model.Snapshot
	if err := h.run.Do(r.Context(), func() error {
		h.ctrl.ResetToDefaults(r.Context())
		snap = h.ctrl.Fields()
		return nil
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
