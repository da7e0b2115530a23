package server

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"sitewatch/internal/domain/alerts"
	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/platform/config"
	"sitewatch/internal/platform/email"
	"sitewatch/internal/platform/jobs"
	"sitewatch/internal/platform/kv"
	"sitewatch/internal/platform/metrics"
	"sitewatch/internal/platform/seed"
	"sitewatch/internal/transport/http/api"
	dashboardhandler "sitewatch/internal/transport/http/handlers/dashboard"
	reportshandler "sitewatch/internal/transport/http/handlers/reports"
	viewshandler "sitewatch/internal/transport/http/handlers/views"
	"sitewatch/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	Storage   kv.Store
	Store     *dashboard.Store
	Service   *dashboard.Service
	Persister *dashboard.Persister
	Jobs      *jobs.Service
	AlertJobs *jobs.Service
	Metrics   *metrics.Collector
	Router    http.Handler

	cancel context.CancelFunc
}

// New wires one dashboard store to the configured storage. The returned App
// owns a background job worker until Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	collector := metrics.New()
	jobCtx, cancel := context.WithCancel(context.Background())
	jobService := jobs.New(cfg.PersistQueueSize, collector)
	jobService.Start(jobCtx)

	persister := dashboard.NewPersister(storage, jobService)
	store := dashboard.Open(ctx, storage, persister)
	svc := dashboard.NewService(store)

	if cfg.SeedFile != "" {
		fx, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			cancel()
			_ = storage.Close()
			return nil, err
		}
		if _, err := seed.Apply(svc, fx); err != nil {
			cancel()
			_ = storage.Close()
			return nil, err
		}
	}
	var alertJobs *jobs.Service
	if cfg.AlertEmailTo != "" {
		// Alert sends run on their own worker, apart from snapshot writes.
		alertJobs = jobs.New(cfg.PersistQueueSize, collector)
		alertJobs.Start(jobCtx)
		notifier := alerts.New(store, email.New(cfg), alertJobs, cfg.AlertEmailFrom, cfg.AlertEmailTo, dashboard.Severity(cfg.AlertMinSeverity))
		svc.Observe(notifier)
	}
	persister.ScheduleBackups(jobCtx, cfg.BackupInterval)

	app := &App{
		Config:    cfg,
		Storage:   storage,
		Store:     store,
		Service:   svc,
		Persister: persister,
		Jobs:      jobService,
		AlertJobs: alertJobs,
		Metrics:   collector,
		cancel:    cancel,
	}
	router, err := app.routes()
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.Router = router
	return app, nil
}

func (a *App) routes() (http.Handler, error) {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Storage.Ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	dashboardHandler, err := dashboardhandler.NewHandler(a.Service)
	if err != nil {
		return nil, err
	}

	router.Route("/api/v1", func(r chi.Router) {
		dashboardHandler.RegisterRoutes(r)

		viewsHandler := viewshandler.NewHandler(a.Store)
		viewsHandler.RegisterRoutes(r)

		reportsHandler := reportshandler.NewHandler(a.Store)
		reportsHandler.RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router, nil
}

// Close flushes pending snapshot writes, stops the job worker and closes
// the storage driver.
func (a *App) Close(ctx context.Context) error {
	flushErr := a.Persister.Flush(ctx)
	if flushErr != nil {
		slog.Warn("snapshot flush failed", "err", flushErr)
	}
	a.cancel()
	return errors.Join(flushErr, a.Storage.Close())
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("http shutdown failed", "err", err)
		}
	}()

	slog.Info("site monitor listening", "addr", cfg.Addr, "storage", cfg.StorageDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.Close(closeCtx); err != nil {
		slog.Warn("shutdown incomplete", "err", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
