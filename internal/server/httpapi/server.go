// Package httpapi exposes the SnipKeeper services over HTTP/JSON using fiber.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/logging"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/config"
	"github.com/dmitrijs2005/snipkeeper/internal/server/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address        string
	prefix         string
	avatarMaxBytes int64
	users          *services.UserService
	snippets       *services.SnippetService
	tokens         *auth.TokenIssuer
	logger         logging.Logger
	metrics        *metrics
	validate       *validator.Validate
	app            *fiber.App
}

// NewServer builds the fiber application with all routes mounted. Metrics
// are registered on reg and served from /metrics.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ss *services.SnippetService, tokens *auth.TokenIssuer, reg *prometheus.Registry) *Server {
	s := &Server{
		address:        cfg.HTTPAddress,
		prefix:         cfg.APIPrefix,
		avatarMaxBytes: cfg.AvatarMaxBytes,
		users:          us,
		snippets:       ss,
		tokens:         tokens,
		logger:         l.With("module", "http_server"),
		metrics:        newMetrics(reg),
		validate:       validator.New(),
	}

	bodyLimit := 4 << 20
	if limit := int(cfg.AvatarMaxBytes) + 1<<20; limit > bodyLimit {
		bodyLimit = limit
	}

	s.app = fiber.New(fiber.Config{
		AppName:               common.ServiceName,
		ErrorHandler:          s.errorHandler,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	s.routes(reg)

	return s
}

// App exposes the underlying fiber application, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes(reg *prometheus.Registry) {
	app := s.app

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(s.tracingMiddleware())
	app.Use(s.metrics.middleware())
	app.Use(s.accessLog())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": common.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := app.Group(s.prefix)

	api.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Success! The backend is running."})
	})

	api.Post("/users", s.register)
	api.Post("/users/login", s.login)
	api.Post("/auth/register", s.register)
	api.Post("/auth/login", s.login)

	api.Get("/user/profile-picture/:userId", s.profilePicture)
	api.Get("/user/profile", s.authMiddleware(), s.getProfile)
	api.Put("/user/profile", s.authMiddleware(), s.updateProfile)

	snippets := api.Group("/snippets", s.authMiddleware())
	snippets.Get("/", s.listSnippets)
	snippets.Post("/", s.createSnippet)
	snippets.Put("/:id", s.updateSnippet)
	snippets.Delete("/:id", s.deleteSnippet)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
