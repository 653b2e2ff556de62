// Package server contains the HTTP handlers for the catalog and favorites API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	_ "holocron/docs" // swagger docs
	"holocron/internal/bootstrap"
	"holocron/internal/config"
	"holocron/internal/identity"
	"holocron/internal/importer"
	"holocron/internal/middleware"
	"holocron/internal/models"
	"holocron/internal/repository"
	"holocron/internal/seed"
	"holocron/internal/service"
	"holocron/internal/swapi"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// seedWindow is the rate limit window for the seed endpoints.
const seedWindow = 10 * time.Minute

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	identity        identity.Identity
	catalogService  *service.CatalogService
	favoriteService *service.FavoriteService
	importer        *importer.Importer
	seeder          *seed.Seeder
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	userRepo := repository.NewUserRepository(db)
	planetRepo := repository.NewPlanetRepository(db)
	peopleRepo := repository.NewPeopleRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	current := identity.NewFixed(userRepo, cfg.CurrentUserID, cfg.CurrentUsername, cfg.CurrentUserEmail)
	source := swapi.NewClient(cfg.SwapiBaseURL, cfg.SwapiUserAgent, cfg.SwapiTimeout())

	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  middleware.InitMetrics("holocron-api"),
		identity:        current,
		catalogService:  service.NewCatalogService(peopleRepo, planetRepo, userRepo),
		favoriteService: service.NewFavoriteService(current, favoriteRepo, planetRepo, peopleRepo),
		importer:        importer.New(source, planetRepo, peopleRepo),
		seeder:          seed.NewSeeder(db),
	}, nil
}

// NewApp builds the Fiber application with middleware and routes attached.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Holocron API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "Unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Spans start before the context middleware so the trace id reaches the logger.
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID, User ID and Trace ID
	app.Use(s.CurrentUser())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Sitemap)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Holocron Metrics Dashboard",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	people := app.Group("/people")
	people.Get("/", s.GetPeople)
	people.Get("/:id", s.GetPerson)

	planets := app.Group("/planets")
	planets.Get("/", s.GetPlanets)
	planets.Get("/:id", s.GetPlanet)

	users := app.Group("/users")
	users.Get("/", s.GetUsers)
	// Specific /favorites route before generic /:id
	users.Get("/favorites", s.GetUserFavorites)
	users.Delete("/:id", s.DeleteUser)

	favorite := app.Group("/favorite")
	favorite.Post("/planet/:id", s.AddFavoritePlanet)
	favorite.Delete("/planet/:id", s.RemoveFavoritePlanet)
	favorite.Post("/people/:id", s.AddFavoritePerson)
	favorite.Delete("/people/:id", s.RemoveFavoritePerson)

	seeds := app.Group("/seed", middleware.RateLimit(s.redis, s.config.SeedRateLimit, seedWindow, "seed"))
	seeds.Post("/swapi", s.SeedSwapi)
	seeds.Post("/test", s.SeedTestData)
}

// CurrentUser resolves the acting user and stores it in locals.
func (s *Server) CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.identity != nil {
			c.Locals("userID", s.identity.CurrentUserID(c.UserContext()))
		}
		return c.Next()
	}
}

type routeEntry struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Sitemap handles GET /
// @Summary List routes
// @Tags meta
// @Produce json
// @Success 200 {array} routeEntry
// @Router / [get]
func (s *Server) Sitemap(c *fiber.Ctx) error {
	routes := []routeEntry{}
	seen := map[string]struct{}{}
	for _, r := range c.App().GetRoutes(true) {
		if r.Method == fiber.MethodHead {
			continue
		}
		path := r.Path
		if len(path) > 1 {
			path = strings.TrimRight(path, "/")
		}
		key := r.Method + " " + path
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		routes = append(routes, routeEntry{Method: r.Method, Path: path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	return c.JSON(routes)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is only checked when
// it is configured.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unhealthy"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()

	addr := fmt.Sprintf(":%s", s.config.Port)
	middleware.Logger.Info("Server starting", slog.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the HTTP listener and closes the database and Redis clients.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("database close: %w", err))
			}
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	return errors.Join(errs...)
}
