package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"srdash/internal/config"
	"srdash/internal/infrastructure"
	"srdash/internal/mailer"
	customMiddleware "srdash/internal/middleware"
	"srdash/internal/services"
	handlers "srdash/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "Merchant SR Dashboard"
)

// Application is the main application container.
type Application struct {
	Config *config.Config
	Router *chi.Mux
	Server *http.Server
	Logger *slog.Logger

	Dashboard *services.DashboardService
	Reports   *services.ReportService
}

// NewApplication loads configuration and wires all services and routes.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) initializeServices() {
	a.Dashboard = services.NewDashboardService(a.Logger)
	mail := mailer.New(a.Config.Email, a.Logger)
	a.Reports = services.NewReportService(a.Dashboard, mail, a.Config.Report, a.Logger)

	if !mail.Configured() {
		a.Logger.Warn("email delivery not configured; report emailing disabled",
			slog.String("hint", "set SRDASH_EMAIL_SENDER and SRDASH_EMAIL_APPPASSWORD"))
	}
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))

	r.Route("/api", func(r chi.Router) {
		dashboard := handlers.NewDashboardHandler(a.Dashboard, a.Config.Server.MaxUploadBytes, a.Logger)
		r.Mount("/", dashboard.Routes())

		reports := handlers.NewReportHandler(a.Reports, a.Logger)
		r.Mount("/report", reports.Routes())

		health := handlers.NewHealthHandler(a.Dashboard, a.Reports)
		r.Mount("/health", health.Routes())
	})

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving HTTP traffic. Server errors cancel the context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "http server listening",
		slog.Int("port", a.Config.Server.Port))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
	return nil
}

// Stop gracefully stops the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
