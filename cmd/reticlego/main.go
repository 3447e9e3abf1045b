package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reticlego/internal/api"
	"reticlego/pkg/bridge"
	"reticlego/pkg/config"
	"reticlego/pkg/db"
	"reticlego/pkg/hotkey"
	"reticlego/pkg/logging"
	"reticlego/pkg/loop"
	"reticlego/pkg/reticle"
	"reticlego/pkg/reticle/svg"
	"reticlego/pkg/settings"
	"reticlego/pkg/store"
	"reticlego/pkg/version"
)

const defaultConfigPath = "configs/reticle.yaml"

var (
	configPath = flag.String("config", defaultConfigPath, "Path to the config file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loadEnv(".env", ".env.local")

	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Reticle Started", "version", version.Version)

	st, err := initStore(appCfg)
	if err != nil {
		return err
	}
	defer st.Close()

	lp := loop.New(256)
	go lp.Run(ctx)

	hub := api.NewEventHub()
	go hub.Run(ctx)
	st.Subscribe(hub.Publish)

	alerts := api.NewAlertLog(20)

	var (
		hook *hotkey.Hook
		reg  hotkey.Registrar
	)
	if appCfg.Hotkeys.Enabled {
		hook = hotkey.NewHook(appCfg.Hotkeys.Modifiers, lp.Post)
		reg = hook
	}

	prov := config.NewProvider(appCfg, st)
	width, height := prov.ViewportSize(ctx)
	surface := svg.New(reticle.Size{Width: width, Height: height}, lp.Post)
	defer surface.Close()
	renderer := reticle.NewRenderer(surface)

	ctrl := settings.NewController(st, settings.NewPage(), appCfg.Defaults, alerts, reg)
	var follower *reticle.Follower
	if err := lp.Do(ctx, func() error {
		var err error
		follower, err = initOverlay(ctx, ctrl, st, renderer)
		return err
	}); err != nil {
		return fmt.Errorf("failed to initialize overlay: %w", err)
	}
	defer ctrl.Close()
	defer follower.Stop()

	if hook != nil {
		go hook.Run(ctx)
	}
	if appCfg.Bridge.URL != "" {
		client := bridge.New(appCfg.Bridge.URL, st, time.Duration(appCfg.Bridge.ReconnectDelay), lp.Post)
		client.OnConnect(func() { resync(ctx, ctrl, follower) })
		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Bridge stopped", "error", err)
			}
		}()
	}

	return runServer(ctx, appCfg, lp, ctrl, renderer, surface, prov, hub, alerts)
}

// initOverlay binds the settings page, seeds defaults on first run and
// starts rendering from the store. It runs on the event loop.
func initOverlay(ctx context.Context, ctrl *settings.Controller, st store.Store, r *reticle.Renderer) (*reticle.Follower, error) {
	if err := ctrl.Bind(ctx); err != nil {
		return nil, err
	}
	seeded, err := ctrl.SeedDefaults(ctx)
	if err != nil {
		return nil, err
	}
	if seeded {
		slog.Info("First run: settings initialised from defaults")
	}
	return reticle.Follow(ctx, st, r), nil
}

// resync reloads the page and the reticle from the shared store after the
// bridge (re)connects. It runs on the event loop.
func resync(ctx context.Context, ctrl *settings.Controller, f *reticle.Follower) {
	f.Resync(ctx)
	if err := ctrl.Resync(ctx); err != nil {
		slog.Error("Failed to resync settings", "error", err)
	}
	slog.Debug("Resynced from store after bridge connect")
}

func initStore(appCfg *config.Config) (*store.Adapter, error) {
	dbConn, err := db.Init(appCfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store.NewAdapter(store.NewSQLiteStore(dbConn)), nil
}

// loadEnv reads optional dotenv files; later files do not override earlier ones.
func loadEnv(paths ...string) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to load env file", "path", p, "error", err)
		}
	}
}

func runServer(ctx context.Context, cfg *config.Config, lp *loop.Loop, ctrl *settings.Controller, r *reticle.Renderer, s *svg.Surface, prov *config.Provider, hub *api.EventHub, alerts *api.AlertLog) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server,
		api.NewSettingsHandler(lp, ctrl),
		api.NewProfileHandler(lp, ctrl),
		api.NewReticleHandler(lp, r, s),
		api.NewWindowHandler(lp, prov),
		hub,
		alerts,
		shutdownFunc,
	)
	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
