package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vuongnm/staffdesk/internal/config"
	"github.com/vuongnm/staffdesk/internal/database"
	"github.com/vuongnm/staffdesk/internal/handler"
	"github.com/vuongnm/staffdesk/internal/logger"
	authmw "github.com/vuongnm/staffdesk/internal/middleware"
	"github.com/vuongnm/staffdesk/internal/repository"
	"github.com/vuongnm/staffdesk/internal/service"
	"github.com/vuongnm/staffdesk/internal/upload"
)

type App struct {
	Echo *echo.Echo
	ES   *database.ElasticSearchClient
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	if cfg.JWT_SECRET == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	// Initialize the document store
	es, err := database.NewElasticSearchClient(ctx, cfg.ES_URL, cfg.ES_INDEX, cfg.ES_EMAIL_INDEX)
	if err != nil {
		return fmt.Errorf("failed to initialize Elasticsearch: %w", err)
	}
	a.ES = es
	logger.InfoLog(ctx, "Elasticsearch connection established successfully")

	uploads, err := upload.NewStore(cfg.UPLOAD_DIR, cfg.UPLOAD_MAX_SIZE)
	if err != nil {
		return fmt.Errorf("failed to initialize upload store: %w", err)
	}

	// Initialize dependencies
	empRepo := repository.NewEmployeeRepository(es, cfg.ES_REQUEST_SIZE)
	empSvc := service.NewEmployeeService(empRepo)
	empHandler := handler.NewEmployeeHandler(empSvc, uploads)
	authHandler := handler.NewAuthHandler(cfg.JWT_SECRET, cfg.TOKEN_TTL, cfg.ADMIN_EMAIL, cfg.ADMIN_PASSWORD)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(empHandler, authHandler, cfg.JWT_SECRET, uploads.Dir())

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(empHandler *handler.EmployeeHandler, authHandler *handler.AuthHandler, jwtSecret, uploadDir string) {
	a.Echo.POST("/api/auth/login", authHandler.LoginHandler)
	a.Echo.Static("/uploads", uploadDir)

	// Every employee route sits behind the capability check; nothing
	// touches the accessor before the token passes.
	employees := a.Echo.Group("/api/employees", authmw.RequireAuth(jwtSecret))
	employees.GET("", empHandler.ListHandler)
	employees.GET("/search", empHandler.SearchHandler)
	employees.GET("/export", empHandler.ExportHandler)
	employees.GET("/:id", empHandler.GetHandler)
	employees.POST("", empHandler.CreateHandler)
	employees.PUT("/:id", empHandler.UpdateHandler)
	employees.DELETE("/:id", empHandler.DeleteHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
