// Package server assembles the SnipKeeper server: storage backend, services,
// tracing and the HTTP API, and runs it until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/logging"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/snipkeeper/internal/server/config"
	"github.com/dmitrijs2005/snipkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/services"
	"github.com/dmitrijs2005/snipkeeper/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	server      *httpapi.Server
}

// seams for tests
var (
	newPostgresManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
		return repomanager.NewPostgresRepositoryManager(ctx, dsn)
	}
	newS3Store = func(ctx context.Context, cfg *config.Config) (avatars.Store, error) {
		return avatars.NewS3Store(ctx, cfg)
	}
)

// NewApp opens storage, runs migrations and wires services into the HTTP server.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, err := openRepositories(ctx, c)
	if err != nil {
		return nil, err
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, err
	}

	store, err := openAvatarStore(ctx, c)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	hasher := auth.NewPasswordHasher(c.BcryptCost)

	us := services.NewUserService(rm, tokens, hasher, store)
	ss := services.NewSnippetService(rm)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := httpapi.NewServer(c, logger, us, ss, tokens, reg)

	return &App{config: c, logger: logger, repomanager: rm, server: srv}, nil
}

func openRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.Storage {
	case config.StorageMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	case config.StoragePostgres:
		rm, err := newPostgresManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		return rm, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}
}

func openAvatarStore(ctx context.Context, c *config.Config) (avatars.Store, error) {
	switch c.AvatarBackend {
	case config.AvatarBackendDB:
		return avatars.NewDBStore(), nil
	case config.AvatarBackendS3:
		s, err := newS3Store(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("avatar store init error: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown avatar backend %q", c.AvatarBackend)
	}
}

func warnInsecureDefaults(ctx context.Context, c *config.Config, logger logging.Logger) {
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "tokens are signed with the built-in development secret, set SNIPKEEPER_SECRET_KEY or -s")
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then releases storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage, "avatars", app.config.AvatarBackend)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(ctx, "close storage", "error", cerr)
	}
	return err
}

// Main is the server entry point: it loads configuration, sets up logging
// and tracing and runs the App. It returns the process exit code.
func Main() int {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := logging.New(os.Stdout, common.ServiceName, level)

	shutdownTracer, err := tracing.Setup(ctx, common.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error(ctx, "tracing init error", "error", err)
		return 1
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error(ctx, "tracing shutdown error", "error", err)
		}
	}()

	warnInsecureDefaults(ctx, cfg, logger)

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init error", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server error", "error", err)
		return 1
	}
	return 0
}
