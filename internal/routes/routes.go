package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/pipespec/pipespec/internal/auth"
	"github.com/pipespec/pipespec/internal/config"
	"github.com/pipespec/pipespec/internal/dimstd"
	"github.com/pipespec/pipespec/internal/identity"
	"github.com/pipespec/pipespec/internal/middleware"
	"github.com/pipespec/pipespec/internal/notification"
	"github.com/pipespec/pipespec/internal/project"
	"github.com/pipespec/pipespec/internal/subscription"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// The in-memory fallbacks exist for dev and tests only.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := middleware.NewMetrics(reg)
	app.Use(metrics.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories
	var (
		identityRepo identity.Repository
		subRepo      subscription.Repository
		projectRepo  project.Repository
		dimStdRepo   dimstd.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		subRepo = subscription.NewPostgresRepository(d.DB)
		projectRepo = project.NewPostgresRepository(d.DB)
		dimStdRepo = dimstd.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		subRepo = subscription.NewMemoryRepository()
		projectRepo = project.NewMemoryRepository()
		dimStdRepo = dimstd.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	identitySvc := identity.NewService(identityRepo, d.Cfg.BcryptCost)
	subSvc := subscription.NewService(subRepo)
	projectSvc := project.NewService(projectRepo)
	dimStdSvc := dimstd.NewService(dimStdRepo, projectSvc)

	verifier := auth.NewVerifier(identityRepo)
	issuer := auth.NewIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)

	authHandler := auth.NewHandler(verifier, issuer, subSvc, d.Logger)
	identityHandler := identity.NewHandler(identitySvc, subSvc, notifier, d.Logger)
	projectHandler := project.NewHandler(projectSvc)
	dimStdHandler := dimstd.NewHandler(dimStdSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	api.Post("/users/register", identityHandler.Register)
	api.Get("/plans", func(c *fiber.Ctx) error {
		plans, err := subSvc.Plans(c.UserContext())
		if err != nil {
			return err
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "plans": plans})
	})

	// Protected routes
	jwtmw := middleware.JWTAuth(issuer)
	protected := api.Group("", jwtmw)
	if d.Cache != nil {
		protected.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	protected.Get("/me", func(c *fiber.Ctx) error {
		uid := middleware.UserID(c)
		user, err := identityRepo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		resp := fiber.Map{"success": true, "user": user.Redacted()}
		if info, err := subSvc.InfoForUser(c.UserContext(), uid); err == nil {
			resp["plan"] = info
		}
		return c.JSON(resp)
	})

	RegisterUserRoutes(protected, identityHandler)
	RegisterProjectRoutes(protected, projectHandler)
	RegisterDimStdRoutes(protected, dimStdHandler)

	return nil
}
