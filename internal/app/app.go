package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"assetgauge/internal/config"
	apierrors "assetgauge/internal/errors"
	"assetgauge/internal/infrastructure"
	custommw "assetgauge/internal/middleware"
	"assetgauge/internal/services"
	handlers "assetgauge/internal/transport/http"
	"assetgauge/internal/validation"
	ws "assetgauge/internal/websocket"
)

const (
	// Version identifies the build. Overridable at link time.
	Version = "1.0.0"
	AppName = "AssetGauge"
)

// BuildTime is set at compile time via ldflags.
var BuildTime = time.Now().Format(time.RFC3339)

// Application is the dependency container of the dashboard service.
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics
	Hub     *ws.Hub

	DatasetService *services.DatasetService
	HealthService  *services.HealthService
	ErrorHandler   *apierrors.ErrorHandler
}

// hubNotifier adapts the websocket hub to the dataset service's
// notifier contract.
type hubNotifier struct {
	hub *ws.Hub
}

func (n *hubNotifier) NotifyDatasetReplaced(info services.DatasetInfo) {
	n.hub.NotifyDatasetReplaced(info)
}

// NewApplication creates a new application instance with all dependencies
// wired together.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
	)

	metrics := infrastructure.NewMetrics()
	hub := ws.NewHub(logger)

	datasetService := services.NewDatasetService(cfg, logger, metrics, &hubNotifier{hub: hub})
	healthService := services.NewHealthService(Version, BuildTime, datasetService)

	a := &Application{
		Config:         cfg,
		Logger:         logger,
		Metrics:        metrics,
		Hub:            hub,
		DatasetService: datasetService,
		HealthService:  healthService,
		ErrorHandler:   apierrors.NewErrorHandler(logger, false),
	}

	if err := a.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	a.createServer()

	return a, nil
}

// setupRouter configures the chi router with middleware and routes. The
// websocket endpoint stays outside the full middleware group so nothing
// wraps its ResponseWriter before the upgrade.
func (a *Application) setupRouter() error {
	validate := validation.New()

	dashboardHandler, err := handlers.NewDashboardHandler(Version, a.Logger)
	if err != nil {
		return err
	}
	datasetHandler := handlers.NewDatasetHandler(a.DatasetService, validate, a.Logger, a.ErrorHandler, a.Config.Upload.MaxBytes)
	chartHandler := handlers.NewChartHandler(a.DatasetService, validate, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService)
	wsHandler := handlers.NewWebSocketHandler(a.Hub, a.Config.Security.AllowedOrigins, a.Logger)

	r := chi.NewRouter()

	r.Use(custommw.RequestID)

	r.Handle("/ws", wsHandler)
	r.Handle("/metrics", a.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)
		r.Use(custommw.Metrics(a.Metrics))
		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Mount("/dataset", datasetHandler.Routes())
			r.Mount("/health", healthHandler.Routes())
			r.Get("/version", healthHandler.Version)
		})
		// Charts emit HTML, so they mount outside the JSON group.
		r.Mount("/api/charts", chartHandler.Routes())

		r.Get("/", dashboardHandler.ServeHTTP)
	})

	a.Router = r
	return nil
}

// createServer builds the HTTP server from configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start launches the hub and the HTTP server.
func (a *Application) Start(ctx context.Context) {
	a.Logger.InfoContext(ctx, "starting server",
		slog.String("addr", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level),
	)

	a.Hub.Start()
}

// Stop gracefully shuts the application down.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Hub.Stop()
	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("failed to close log file", slog.String("error", err.Error()))
	}
	return nil
}

// Run starts the application and blocks until an interrupt arrives or
// the server fails.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutdown requested")
		return a.Stop(context.Background())
	})

	return g.Wait()
}
