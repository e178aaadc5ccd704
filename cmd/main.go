package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/config"
	"github.com/Dosada05/tournament-manager/db"
	"github.com/Dosada05/tournament-manager/handlers"
	"github.com/Dosada05/tournament-manager/repositories"
	api "github.com/Dosada05/tournament-manager/routes"
	"github.com/Dosada05/tournament-manager/services"
	"github.com/Dosada05/tournament-manager/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageBackend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	hubDone := make(chan struct{})
	defer close(hubDone)
	go wsHub.Run(hubDone)

	// Репозитории
	userRepo := repositories.NewKVUserRepository(store)
	tournamentRepo := repositories.NewKVTournamentRepository(store)

	// Сервисы
	authService := services.NewAuthService(services.AuthServiceDeps{
		UserRepo:   userRepo,
		JWTSecret:  []byte(cfg.JWTSecretKey),
		AdminEmail: cfg.AdminEmail,
	})
	tournamentService := services.NewTournamentService(services.TournamentServiceDeps{
		Repo:   tournamentRepo,
		Hub:    wsHub,
		Logger: logger,
	})
	leaderboardService := services.NewLeaderboardService(tournamentRepo)
	dashboardService := services.NewDashboardService(userRepo, tournamentRepo, nil)
	reminderService := services.NewReminderService(services.ReminderServiceDeps{
		Repo:     tournamentRepo,
		Notifier: services.NewMultiNotifier(services.NewHubNotifier(wsHub), services.NewLogNotifier(logger)),
		Interval: cfg.ReminderInterval,
		Window:   cfg.ReminderWindow,
		Logger:   logger,
	})

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Tournament:  handlers.NewTournamentHandler(tournamentService, leaderboardService, authService),
		Match:       handlers.NewMatchHandler(tournamentService, authService),
		Admin:       handlers.NewAdminHandler(tournamentService, authService, cfg.AutoScheduleSpacing),
		Chat:        handlers.NewChatHandler(tournamentService, authService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return reminderService.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// openStore выбирает хранилище по STORAGE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, err := storage.NewPostgresStore(ctx, dbConn)
		if err != nil {
			closeDB(dbConn, logger)
			return nil, noop, err
		}
		logger.Info("postgres store initialized")
		return store, func() { closeDB(dbConn, logger) }, nil

	case config.StorageR2:
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2StoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			KeyPrefix:       cfg.R2KeyPrefix,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize Cloudflare R2 store: %w", err)
		}
		logger.Info("Cloudflare R2 store initialized", slog.String("bucket", cfg.R2BucketName))
		return store, noop, nil

	default:
		logger.Warn("using in-memory store, state is lost on restart")
		return storage.NewMemoryStore(), noop, nil
	}
}

func closeDB(dbConn *sql.DB, logger *slog.Logger) {
	if err := dbConn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
		return
	}
	logger.Info("database connection closed")
}
