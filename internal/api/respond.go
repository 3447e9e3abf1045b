package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"reticlego/pkg/loop"
	"reticlego/pkg/profile"
	"reticlego/pkg/settings"
)

// maxBody caps request bodies; exported settings are a few hundred bytes.
const maxBody = 1 << 20

// Runner executes fn on the event loop and waits for it.
type Runner interface {
	Do(ctx context.Context, fn func() error) error
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to status codes. The message is the same
// text the user sees in the alert.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, profile.ErrQuickSlotEmpty),
		errors.Is(err, settings.ErrUnknownField):
		status = http.StatusNotFound
	case errors.Is(err, profile.ErrEmptyLabel),
		errors.Is(err, profile.ErrInvalidProfile),
		errors.Is(err, settings.ErrInvalidImport):
		status = http.StatusBadRequest
	case errors.Is(err, loop.ErrStopped):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
}
