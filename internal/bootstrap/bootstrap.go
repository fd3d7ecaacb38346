// Package bootstrap wires configuration, the database, and the dependency
// graph. Everything request handlers need travels through the Dependencies
// container; there is no package-global state.
package bootstrap

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/studentdesk/studentdesk/internal/app/controllers"
	appRepos "github.com/studentdesk/studentdesk/internal/app/repositories"
	appRoutes "github.com/studentdesk/studentdesk/internal/app/routes"
	appServices "github.com/studentdesk/studentdesk/internal/app/services"
	"github.com/studentdesk/studentdesk/internal/config"
	"github.com/studentdesk/studentdesk/internal/db"
	appMiddleware "github.com/studentdesk/studentdesk/internal/middleware"
	"github.com/studentdesk/studentdesk/internal/pkg/logger"
	"github.com/studentdesk/studentdesk/internal/session"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	HealthController  *appControllers.HealthController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	Sessions          *session.Store
	Bootstrap         *db.BootstrapStatus
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase runs the best-effort schema bootstrap and creates the
// connection pool. A store that is down at startup is logged, recorded in the
// bootstrap status, and never fatal: handlers surface connectivity errors per
// request.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, *db.BootstrapStatus, error) {
	status := &db.BootstrapStatus{}

	if err := db.EnsureSchema(context.Background(), cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Database initialization failed; server will continue running, but database operations may fail")
		status.Err = err
	} else {
		status.Initialized = true
		lgr.Info().Msg("Database initialized successfully")
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create connection pool")
		return nil, nil, err
	}

	if err := database.Ping(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Database unreachable at startup; requests will fail until it comes back")
	} else {
		lgr.Info().Msg("Database connection successfully established")
	}

	return database, status, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, status *db.BootstrapStatus, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Bootstrap: status}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Sessions = session.NewStore(cfg.SessionTTL())

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions, cfg.Session.CookieName)

	cookie := appControllers.CookieSettings{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.SessionTTL(),
		Secure: cfg.Session.Secure,
	}
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Sessions, cookie, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.HealthController = appControllers.NewHealthController(database.Pool, status)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	// gin.Default carries the recovery middleware: panics are logged and the
	// process keeps serving
	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
