package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/prashikshan/backend/internal/app/controllers"
	appMigrations "github.com/prashikshan/backend/internal/app/migrations"
	appRepos "github.com/prashikshan/backend/internal/app/repositories"
	appRoutes "github.com/prashikshan/backend/internal/app/routes"
	appServices "github.com/prashikshan/backend/internal/app/services"
	"github.com/prashikshan/backend/internal/config"
	"github.com/prashikshan/backend/internal/db"
	appMiddleware "github.com/prashikshan/backend/internal/middleware"
	pkgAuth "github.com/prashikshan/backend/internal/pkg/auth"
	"github.com/prashikshan/backend/internal/pkg/filestorage"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	CollegeService       *appServices.CollegeService
	StudentService       *appServices.StudentService
	EmployerService      *appServices.EmployerService
	InternshipService    *appServices.InternshipService
	LogbookService       *appServices.LogbookService
	ProfileService       *appServices.ProfileService
	AuthController       *appControllers.AuthController
	CollegeController    *appControllers.CollegeController
	StudentController    *appControllers.StudentController
	EmployerController   *appControllers.EmployerController
	InternshipController *appControllers.InternshipController
	LogbookController    *appControllers.LogbookController
	ProfileController    *appControllers.ProfileController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
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

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.IdentityRepository,
		deps.Repos.TokenRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.CollegeRepository,
		deps.JWTService,
		lgr,
	)
	deps.CollegeService = appServices.NewCollegeService(
		deps.Repos.IdentityRepository,
		deps.Repos.CollegeRepository,
		deps.Repos.StudentRepository,
		deps.Repos.RosterRepository,
		deps.FileStorage,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.CollegeRepository,
		deps.Repos.InternshipRepository,
		deps.FileStorage,
		lgr,
	)
	deps.EmployerService = appServices.NewEmployerService(
		deps.Repos.EmployerRepository,
		deps.Repos.InternshipRepository,
		deps.FileStorage,
		lgr,
	)
	deps.InternshipService = appServices.NewInternshipService(deps.Repos.InternshipRepository, lgr)
	deps.LogbookService = appServices.NewLogbookService(deps.Repos.LogbookRepository, lgr)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.IdentityRepository, deps.Repos.ProfileRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CollegeController = appControllers.NewCollegeController(deps.CollegeService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.EmployerController = appControllers.NewEmployerController(deps.EmployerService, lgr)
	deps.InternshipController = appControllers.NewInternshipController(deps.InternshipService, lgr)
	deps.LogbookController = appControllers.NewLogbookController(deps.LogbookService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CollegeController,
		deps.StudentController,
		deps.EmployerController,
		deps.InternshipController,
		deps.LogbookController,
		deps.ProfileController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

// parseDuration parses a configured duration, falling back on bad input
func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Str("value", value).Msg("Invalid duration in config, using fallback")
		return fallback
	}
	return d
}
