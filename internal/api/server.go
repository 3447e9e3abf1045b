package api

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"reticlego/internal/ui"
	"reticlego/pkg/config"
	"reticlego/pkg/logging"
	"reticlego/pkg/version"
)

// NewServer creates and configures the HTTP server.
// It accepts handlers for all API endpoints and a shutdownFunc for graceful shutdown.
func NewServer(cfg config.ServerConfig, settingsH *SettingsHandler, profileH *ProfileHandler, reticleH *ReticleHandler, windowH *WindowHandler, events *EventHub, alerts *AlertLog, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health and info
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/version", handleVersion)
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)
	mux.HandleFunc("GET /api/log/recent", handleRecentLog)
	mux.HandleFunc("GET /api/alerts", alerts.HandleAlerts)

	// 2. Settings
	mux.HandleFunc("GET /api/fields", settingsH.HandleFields)
	mux.HandleFunc("PUT /api/fields/{id}", settingsH.HandleEditField)
	mux.HandleFunc("GET /api/export", settingsH.HandleExport)
	mux.HandleFunc("POST /api/import", settingsH.HandleImport)
	mux.HandleFunc("POST /api/reset", settingsH.HandleReset)

	// 3. Profiles
	mux.HandleFunc("GET /api/profiles", profileH.HandleList)
	mux.HandleFunc("POST /api/profiles", profileH.HandleCreate)
	mux.HandleFunc("PUT /api/profiles/selected", profileH.HandleSelect)
	mux.HandleFunc("POST /api/profiles/load", profileH.HandleLoad)
	mux.HandleFunc("POST /api/profiles/save", profileH.HandleSave)
	mux.HandleFunc("DELETE /api/profiles/{label}", profileH.HandleDelete)
	mux.HandleFunc("GET /api/quickslots", profileH.HandleQuickSlots)
	mux.HandleFunc("POST /api/quickslots/{n}", profileH.HandleActivateQuickSlot)

	// 4. Reticle
	mux.HandleFunc("GET /api/reticle", reticleH.HandleState)
	mux.HandleFunc("GET /api/reticle.svg", reticleH.HandleSVG)
	mux.HandleFunc("PUT /api/viewport", reticleH.HandleViewport)
	mux.HandleFunc("GET /api/window", windowH.HandleWindow)

	// 5. Change stream
	mux.HandleFunc("GET /api/events", events.HandleWebSocket)

	// 6. Shutdown Endpoint
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow response to flush
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	// 7. Overlay and settings pages
	distFS, err := fs.Sub(ui.DistFS, "dist")
	if err != nil {
		panic(fmt.Sprintf("Failed to subtree dist from embedded assets: %v", err))
	}
	mux.Handle("/", http.FileServer(&spaFileSystem{root: http.FS(distFS)}))

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      requestLog(mux),
		ReadTimeout:  time.Duration(cfg.ReadTimeout),
		WriteTimeout: time.Duration(cfg.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}
}

// requestLog records every request on the request logger.
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
