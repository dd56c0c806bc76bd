package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garment-backend/internal/cache"
	"garment-backend/internal/config"
	"garment-backend/internal/database"
	"garment-backend/internal/db"
	"garment-backend/internal/handlers"
	"garment-backend/internal/health"
	h "garment-backend/internal/http"
	"garment-backend/internal/logging"
	"garment-backend/internal/middleware"
	"garment-backend/internal/notify"
	"garment-backend/internal/repositories"
	"garment-backend/internal/services"
	"garment-backend/internal/timeutil"
	"garment-backend/internal/upstream"
	"garment-backend/internal/worksheet"
	"garment-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// connectDatabase opens the pool and applies pending migrations.
// Returns nil when the database is disabled or unreachable; the service then runs on defaults.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) *pgxpool.Pool {
	if !cfg.Database.Enabled {
		logger.Info("database disabled, settings use built-in defaults and save logs are skipped")
		return nil
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Warn("database unavailable, continuing without it", zap.Error(err))
		return nil
	}

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		logger.Error("migrations failed, continuing without database", zap.Error(err))
		pool.Close()
		return nil
	}
	return pool
}

func main() {
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	var missing *config.MissingFileError
	if err != nil && !errors.As(err, &missing) {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	if missing != nil {
		logger.Info("config file not found, using defaults and environment", zap.String("path", missing.Path))
	}
	if err := timeutil.SetZone(cfg.Factory.Timezone); err != nil {
		logger.Warn("invalid factory time zone, keeping default",
			zap.String("zone", cfg.Factory.Timezone),
			zap.String("default", timeutil.DefaultZone),
			zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database (optional)
	pool := connectDatabase(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	// Redis (optional)
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Warn("redis unavailable, drafts and settings cache disabled", zap.Error(err))
	}
	defer cache.Close()

	// Persistence ports stay untyped nil without a database
	var settingStore services.SettingStore
	var saveLogs handlers.SaveLogLister
	var recorder worksheet.SaveRecorder
	if pool != nil {
		settingStore = repositories.NewSystemSettingRepository(pool)
		saveLogRepo := repositories.NewSaveLogRepository(pool)
		saveLogs = saveLogRepo
		recorder = saveLogRepo
	}

	settingService := services.NewSystemSettingService(settingStore)
	reportService := services.NewReportService(cfg.Factory.Name)

	var archiver worksheet.Archiver
	var archiveLister handlers.ArchiveLister
	if cfg.Archive.Usable() {
		archiveService, err := services.NewArchiveService(ctx, cfg.Archive, reportService)
		if err != nil {
			logger.Warn("archive unavailable, saved sheets will not be archived", zap.Error(err))
		} else {
			archiver = archiveService
			archiveLister = archiveService
		}
	}

	hub := notify.NewHub()
	go hub.Run(ctx)

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Token, cfg.Upstream.Timeout)
	manager := worksheet.NewManager(worksheet.Deps{
		Collaborators: client,
		Drafts:        cache.NewDraftStore(),
		Recorder:      recorder,
		Notifier:      hub,
		Archiver:      archiver,
		Rates:         settingService,
	})

	healthChecker := health.NewHealthChecker(pool, cache.IsHealthy)

	router := h.NewRouter(
		handlers.NewWorksheetHandler(manager),
		handlers.NewSystemSettingHandler(settingService),
		handlers.NewSaveLogHandler(saveLogs),
		handlers.NewReportHandler(manager.Snapshot, reportService, archiveLister),
		handlers.NewNotificationHandler(hub),
		handlers.NewHealthHandler(healthChecker),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.PanicRecovery(middleware.NewCORS(cfg)(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Open on today's worksheet, the same as the UI does on first load
	go func() {
		if _, err := manager.Select(ctx, timeutil.Today()); err != nil {
			logger.Warn("initial worksheet load failed", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("server running",
			zap.String("addr", server.Addr),
			zap.String("upstream", cfg.Upstream.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
