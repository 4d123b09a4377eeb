package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oakmere/senreg/docs" // Import generated swagger docs
	appControllers "github.com/oakmere/senreg/internal/app/controllers"
	appMigrations "github.com/oakmere/senreg/internal/app/migrations"
	appRepos "github.com/oakmere/senreg/internal/app/repositories"
	appRoutes "github.com/oakmere/senreg/internal/app/routes"
	appServices "github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/config"
	"github.com/oakmere/senreg/internal/db"
	appMiddleware "github.com/oakmere/senreg/internal/middleware"
	"github.com/oakmere/senreg/internal/pkg/filestorage"
	"github.com/oakmere/senreg/internal/pkg/logger"
	"github.com/oakmere/senreg/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	PupilService            *appServices.PupilService
	ProfileService          *appServices.ProfileService
	ResolverService         *appServices.NeedsResolverService
	OverrideService         *appServices.OverrideService
	AssignmentService       *appServices.PupilCategoryService
	NeedService             *appServices.NeedService
	CategoryService         *appServices.CategoryService
	MembershipService       *appServices.CategoryNeedService
	DeviceService           *appServices.DeviceService
	FormService             *appServices.FormService
	PupilController         *appControllers.PupilController
	PupilCategoryController *appControllers.PupilCategoryController
	NeedController          *appControllers.NeedController
	CategoryController      *appControllers.CategoryController
	DeviceController        *appControllers.DeviceController
	FormController          *appControllers.FormController
	Repos                   *appRepos.Repositories
	Logger                  zerolog.Logger
	FileStorage             *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := strings.ToLower(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", logLevel).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			// Seed failures are logged but never block startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.UploadPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.ResolverService = appServices.NewNeedsResolverService(
		deps.Repos.PupilCategoryRepository,
		deps.Repos.NeedOverrideRepository,
	)
	deps.PupilService = appServices.NewPupilService(
		deps.Repos.PupilRepository,
		deps.Repos.FormRepository,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.PupilRepository,
		deps.Repos.FormRepository,
		deps.Repos.PupilCategoryRepository,
		deps.Repos.NeedOverrideRepository,
		deps.ResolverService,
		deps.Repos.DeviceRepository,
	)
	deps.OverrideService = appServices.NewOverrideService(
		deps.Repos.NeedOverrideRepository,
		deps.Repos.PupilRepository,
		deps.Repos.NeedRepository,
	)
	deps.AssignmentService = appServices.NewPupilCategoryService(
		deps.Repos.PupilCategoryRepository,
		deps.Repos.PupilRepository,
		deps.Repos.CategoryRepository,
	)
	deps.NeedService = appServices.NewNeedService(
		deps.Repos.NeedRepository,
		deps.Repos.CategoryNeedRepository,
	)
	deps.CategoryService = appServices.NewCategoryService(deps.Repos.CategoryRepository)
	deps.MembershipService = appServices.NewCategoryNeedService(
		deps.Repos.CategoryNeedRepository,
		deps.Repos.CategoryRepository,
		deps.Repos.NeedRepository,
	)
	deps.DeviceService = appServices.NewDeviceService(
		deps.Repos.DeviceRepository,
		deps.Repos.NeedRepository,
		deps.Repos.CategoryRepository,
	)
	deps.FormService = appServices.NewFormService(deps.Repos.FormRepository)

	deps.PupilController = appControllers.NewPupilController(deps.PupilService, deps.ProfileService, deps.FileStorage)
	deps.PupilCategoryController = appControllers.NewPupilCategoryController(
		deps.AssignmentService,
		deps.OverrideService,
		deps.ResolverService,
		deps.PupilService,
	)
	deps.NeedController = appControllers.NewNeedController(deps.NeedService, deps.DeviceService)
	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService, deps.MembershipService)
	deps.DeviceController = appControllers.NewDeviceController(deps.DeviceService)
	deps.FormController = appControllers.NewFormController(deps.FormService)

	return deps, nil
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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.PupilController,
		deps.PupilCategoryController,
		deps.NeedController,
		deps.CategoryController,
		deps.DeviceController,
		deps.FormController,
	)

	return router
}
