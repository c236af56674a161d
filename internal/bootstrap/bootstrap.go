package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/seasonledger/internal/app/controllers"
	appMigrations "github.com/yigit/seasonledger/internal/app/migrations"
	appRepos "github.com/yigit/seasonledger/internal/app/repositories"
	appRoutes "github.com/yigit/seasonledger/internal/app/routes"
	appServices "github.com/yigit/seasonledger/internal/app/services"
	"github.com/yigit/seasonledger/internal/config"
	"github.com/yigit/seasonledger/internal/db"
	appMiddleware "github.com/yigit/seasonledger/internal/middleware"
	pkgAuth "github.com/yigit/seasonledger/internal/pkg/auth"
	"github.com/yigit/seasonledger/internal/pkg/logger"
	"github.com/yigit/seasonledger/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers *appRoutes.Controllers
	Registry    *prometheus.Registry
	Clock       clockwork.Clock
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the pool and applies pending migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := RunMigrations(ctx, database, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool).Migrate(ctx, appMigrations.Files())
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes repositories, services and controllers, then seeds
// default data when enabled.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Clock:  clockwork.NewRealClock(),
		Logger: lgr,
	}

	deps.Repos = appRepos.NewRepositories(database)
	hasher := pkgAuth.NewPasswordHasher(cfg.Security.BcryptCost)
	deps.Services = appServices.NewServices(deps.Repos, database, hasher, deps.Clock)

	deps.Controllers = &appRoutes.Controllers{
		Person: appControllers.NewPersonController(deps.Services.PersonService, deps.Services.ReportService),
		Season: appControllers.NewSeasonController(deps.Services.SeasonService, deps.Services.ReportService),
		Event:  appControllers.NewEventController(deps.Services.EventService),
	}

	deps.Registry = prometheus.NewRegistry()
	if err := deps.Registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := deps.Registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}

	if cfg.Seed.Enabled {
		seedCtx, cancel := context.WithTimeout(logger.WithContext(ctx, lgr), 30*time.Second)
		defer cancel()
		err := seed.CreateDefaultData(seedCtx, deps.Repos.PersonRepository, deps.Repos.SeasonRepository, hasher, deps.Clock, seed.Options{
			AdminGameName: cfg.Seed.AdminGameName,
			AdminPassword: cfg.Seed.AdminPassword,
			CreateSeason:  cfg.Seed.CreateSeason,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, pinger appRoutes.Pinger) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	deps.Logger.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	appMiddleware.RegisterValidatorTagNames()

	metrics, err := appMiddleware.NewMetrics(deps.Registry, deps.Clock)
	if err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(deps.Clock),
		appMiddleware.Recovery(),
		metrics.Handler(),
	)

	appRoutes.SetupOps(router, pinger, deps.Registry)
	appRoutes.SetupRouter(router, deps.Controllers)

	return router, nil
}
