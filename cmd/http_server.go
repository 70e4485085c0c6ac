package cmd

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

	"github.com/frahmantamala/organization-management/api"
	"github.com/frahmantamala/organization-management/db/migrations"
	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/auth"
	"github.com/frahmantamala/organization-management/internal/company"
	"github.com/frahmantamala/organization-management/internal/department"
	"github.com/frahmantamala/organization-management/internal/store/gormstore"
	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/transport/middleware"
	"github.com/frahmantamala/organization-management/internal/transport/rest"
	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/frahmantamala/organization-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gormstore.Database
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.DB.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	if err := deps.DB.Close(); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	base := transport.NewBaseHandler(deps.Logger)
	storeCtx := gormstore.NewDBContext(deps.DB.Gorm)
	tokens := auth.NewJWTTokenService(cfg.Security.TokenSecret)
	state := &usecase.State{Store: storeCtx, Tokens: tokens}

	var metrics *middleware.Metrics
	if cfg.Observability.Metrics.Enabled {
		metrics = middleware.NewMetrics()
	}

	rest.RegisterAllRoutes(
		deps.Router,
		base,
		storeCtx,
		auth.NewHandler(base, state, tokens, cfg.Security),
		auth.NewRBACAuthorization(base),
		company.NewHandler(base, state),
		department.NewHandler(base, state),
		metrics,
		*cfg,
		deps.Logger,
	)
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.LoggerWrapper()

	if _, err := api.Load(ctx); err != nil {
		return nil, err
	}

	db, err := initDB(ctx, config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if config.Database.AutoMigrate {
		log.Info("applying migrations", "driver", config.Database.Driver)
		if err := migrations.Up(ctx, db.SQL.DB, config.Database.Driver); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pool and verifies it answers before the server starts.
func initDB(ctx context.Context, cfg internal.DatabaseConfig) (*gormstore.Database, error) {
	db, err := gormstore.Open(cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := internal.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.SQL.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
