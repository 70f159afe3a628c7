package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/archive"
	"github.com/aussiebroadwan/recon/internal/recon/engine"
	httpapi "github.com/aussiebroadwan/recon/internal/recon/http"
	"github.com/aussiebroadwan/recon/internal/recon/notify"
	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/internal/recon/store"
	"github.com/aussiebroadwan/recon/internal/recon/store/drivers/sqlite"
	"github.com/aussiebroadwan/recon/pkg/cryptox"
	"github.com/aussiebroadwan/recon/pkg/jwtx"
	"github.com/aussiebroadwan/recon/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application holds the recon server and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	engine   *engine.Client
	notifier service.Notifier
	archiver service.Archiver // nil when no archive endpoint is configured

	authService         *service.AuthService
	scanService         *service.ScanService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialised.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "recon",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitTokenKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token keys: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	if err := app.initIntegrations(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("recon starting", "port", app.cfg.Port, "version", BuildVersion, "engine", app.cfg.Engine.URL)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background work and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down recon...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "err", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "err", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "err", err)
		return err
	}

	app.logger.Info("recon stopped")
	return nil
}

// Handler exposes the routed HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initIntegrations sets up the scan engine client, the OTP notifier and the
// optional scan archive.
func (app *Application) initIntegrations(ctx context.Context) error {
	app.engine = engine.NewClient(app.cfg.Engine.URL, app.cfg.Engine.Timeout)

	if app.cfg.SMTP.Host != "" {
		smtp, err := notify.NewSMTP(app.cfg.SMTP)
		if err != nil {
			return fmt.Errorf("failed to configure smtp: %w", err)
		}
		app.notifier = smtp
		app.logger.Info("otp delivery via smtp", "host", app.cfg.SMTP.Host, "port", app.cfg.SMTP.Port)
	} else {
		app.notifier = notify.Log{}
		app.logger.Warn("SMTP_HOST not set, one-time codes will be written to the log")
	}

	if app.cfg.Archive.Enabled() {
		arch, err := archive.Open(ctx, app.cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to open scan archive: %w", err)
		}
		app.archiver = arch
		app.logger.Info("scan archive enabled", "endpoint", app.cfg.Archive.Endpoint, "bucket", app.cfg.Archive.Bucket)
	}

	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store: app.db,
		Tokens: &service.TokenService{
			Signer: app.signer,
			Issuer: app.cfg.Issuer,
			TTL:    app.cfg.TokenTTL,
		},
		Notifier:   app.notifier,
		Policy:     app.cfg.LockoutPolicy(),
		OTPTTL:     app.cfg.OTPTTL,
		RequireOTP: app.cfg.RequireOTP,
	}

	app.scanService = &service.ScanService{
		Store:    app.db,
		Engine:   app.engine,
		Archiver: app.archiver,
		Scope:    service.HistoryScope(app.cfg.HistoryScope),
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.ScanService = app.scanService
	router.EngineHealth = app.engine
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		// Active scans hold the request open until the engine answers.
		WriteTimeout: app.cfg.Engine.Timeout + 30*time.Second,
	}
}
