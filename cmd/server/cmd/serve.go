package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusconnect/server/internal/api"
	"github.com/campusconnect/server/internal/auth"
	"github.com/campusconnect/server/internal/config"
	"github.com/campusconnect/server/internal/domain/accounts"
	"github.com/campusconnect/server/internal/email"
	"github.com/campusconnect/server/internal/metrics"
	"github.com/campusconnect/server/internal/storage"
	"github.com/campusconnect/server/internal/storage/memory"
	"github.com/campusconnect/server/internal/storage/postgres"
	"github.com/campusconnect/server/internal/storage/seed"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CampusConnect HTTP server",
	Long: `Start the CampusConnect HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Use the in-memory store, or PostgreSQL when DATABASE_URL is set
- Bootstrap an admin account if ADMIN_* env vars are set
- Seed demo accounts and events in development (SEED_DEMO_DATA)
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug

  # Start with a config file
  server serve --config /etc/campusconnect/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("environment", cfg.Environment).Msg("starting CampusConnect server")

	metrics.Init(Version, cfg.Environment)

	repo, cleanup, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions := auth.NewManager(cfg.Session.TTL, logger)
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	go sessions.Run(sweepCtx, cfg.Session.SweepInterval)

	metrics.RegisterSessionGauge(sessions.Len)
	metrics.Registry.MustRegister(metrics.NewStoreCollector(repo))

	accountsService := accounts.NewService(repo.Accounts(), logger)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startupCancel()

	if err := bootstrapAdmin(startupCtx, cfg, accountsService, logger); err != nil {
		logger.Error().Err(err).Msg("admin bootstrap failed")
	}

	if cfg.SeedDemoData {
		if err := seed.Load(startupCtx, repo, accountsService, logger); err != nil {
			logger.Error().Err(err).Msg("demo seed failed")
		}
	}

	emailer := email.NewService(cfg.Email, logger)

	handler := api.NewRouter(cfg, logger, api.Dependencies{
		Repo:     repo,
		Sessions: sessions,
		Emailer:  emailer,
		Version:  Version,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}

	// Override logging from flags if provided
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

// openStore picks the storage adapter: PostgreSQL when DATABASE_URL is set,
// the in-memory store otherwise. The returned cleanup closes the pool.
func openStore(cfg config.Config, logger zerolog.Logger) (storage.Repository, func(), error) {
	if cfg.Database.URL == "" {
		logger.Info().Msg("using in-memory store")
		return memory.New(), func() {}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.Database.MaxConnections > 0 {
		poolCfg.MaxConns = int32(cfg.Database.MaxConnections)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repository init failed: %w", err)
	}

	logger.Info().Msg("using PostgreSQL store")
	return repo, pool.Close, nil
}

// bootstrapAdmin creates the configured admin account on first boot. A
// username or email collision means the account already exists and is not
// an error.
func bootstrapAdmin(ctx context.Context, cfg config.Config, svc *accounts.Service, logger zerolog.Logger) error {
	bootstrap := cfg.AdminBootstrap
	if bootstrap.Username == "" || bootstrap.Password == "" || bootstrap.Email == "" {
		logger.Debug().Msg("admin bootstrap env vars not fully set; skipping")
		return nil
	}

	_, err := svc.Register(ctx, accounts.RegisterParams{
		Username: bootstrap.Username,
		Password: bootstrap.Password,
		Name:     bootstrap.Name,
		Email:    bootstrap.Email,
		IsAdmin:  true,
	})
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) || errors.Is(err, accounts.ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	// Redact email in production to avoid PII leaks
	if cfg.Environment == "production" {
		logger.Info().Str("username", bootstrap.Username).Msg("bootstrapped admin account")
	} else {
		logger.Info().Str("username", bootstrap.Username).Str("email", bootstrap.Email).Msg("bootstrapped admin account")
	}
	return nil
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
