package api

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Alert is one user-visible message.
type Alert struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// AlertLog keeps the most recent user alerts for the settings page. It is
// the profile.Reporter of the running service.
type AlertLog struct {
	mu      sync.Mutex
	entries []Alert
	limit   int
}

// NewAlertLog creates a log holding up to limit alerts.
func NewAlertLog(limit int) *AlertLog {
	if limit <= 0 {
		limit = 20
	}
	return &AlertLog{limit: limit}
}

func (a *AlertLog) Alert(msg string) {
	slog.Warn("User alert", "message", msg)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, Alert{Time: time.Now(), Message: msg})
	if len(a.entries) > a.limit {
		a.entries = a.entries[len(a.entries)-a.limit:]
	}
}

// Recent returns alerts oldest first.
func (a *AlertLog) Recent() []Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.entries)
}

// HandleAlerts returns recent alerts.
func (a *AlertLog) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	entries := a.Recent()
	if entries == nil {
		entries = []Alert{}
	}
	writeJSON(w, http.StatusOK, entries)
}
