package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/maintrack/maintenance-system/docs"
	"github.com/maintrack/maintenance-system/internal/api/handler"
	"github.com/maintrack/maintenance-system/internal/api/middleware"
	"github.com/maintrack/maintenance-system/internal/auth"
	"github.com/maintrack/maintenance-system/internal/core/ports"
	"github.com/maintrack/maintenance-system/internal/core/service"
	mongodb "github.com/maintrack/maintenance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/maintrack/maintenance-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity repository and recorder are passed in because their lifecycle
// (worker startup and shutdown) belongs to main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	blob ports.BlobStore,
	activityRepo ports.ActivityRepository,
	recorder ports.ActivityRecorder,
	codec *auth.Codec,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("maintenance"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	equipmentRepo := mongodb.NewEquipmentRepository(db)
	groupRepo := mongodb.NewGroupRepository(db)
	maintenanceRepo := mongodb.NewMaintenanceRepository(db)
	attachmentRepo := mongodb.NewAttachmentRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, codec, recorder, log)
	userService := service.NewUserService(userRepo, recorder, log)
	equipmentService := service.NewEquipmentService(equipmentRepo, groupRepo, maintenanceRepo, recorder, log)
	groupService := service.NewGroupService(groupRepo, equipmentRepo, recorder, log)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, equipmentRepo, groupRepo, attachmentRepo, blob, recorder, log)
	attachmentService := service.NewAttachmentService(attachmentRepo, maintenanceRepo, blob, recorder, log)
	statsService := service.NewStatsService(statsRepo, userRepo, equipmentRepo, maintenanceRepo, groupRepo, activityRepo, redisdb.NewStatsCache(rdb, log), log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	groupHandler := handler.NewGroupHandler(groupService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	statsHandler := handler.NewStatsHandler(statsService)

	authRequired := middleware.Auth(codec)
	adminOnly := middleware.RequireAdmin()

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.PUT("/auth/change-password", authHandler.ChangePassword, authRequired)
	api.POST("/auth/create-user", authHandler.CreateUser, authRequired, adminOnly)

	// --- Users (admin) ---
	users := api.Group("/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Equipment ---
	equipos := api.Group("/equipos", authRequired)
	equipos.POST("", equipmentHandler.Create)
	equipos.GET("", equipmentHandler.List)
	equipos.GET("/:id", equipmentHandler.Get)
	equipos.PUT("/:id", equipmentHandler.Update)
	equipos.DELETE("/:id", equipmentHandler.Delete)

	// --- Groups ---
	grupos := api.Group("/grupos", authRequired)
	grupos.GET("", groupHandler.List)
	grupos.POST("", groupHandler.Create)
	grupos.DELETE("/:id", groupHandler.Delete)

	// --- Maintenance ---
	mantenimientos := api.Group("/mantenimientos", authRequired)
	mantenimientos.POST("", maintenanceHandler.Create)
	mantenimientos.GET("", maintenanceHandler.List)
	mantenimientos.GET("/by-equipo/:id", maintenanceHandler.ListByEquipment)
	mantenimientos.GET("/:id", maintenanceHandler.Get)
	mantenimientos.PUT("/:id", maintenanceHandler.Update)
	mantenimientos.DELETE("/:id", maintenanceHandler.Delete)
	mantenimientos.POST("/:id/archivos", attachmentHandler.Upload)
	mantenimientos.DELETE("/archivo/:archivoId", attachmentHandler.Delete)

	// --- Stats ---
	stats := api.Group("/stats", authRequired)
	stats.GET("/total-equipos", statsHandler.TotalEquipment)
	stats.GET("/total-mantenimientos", statsHandler.TotalMaintenance)
	stats.GET("/top-creators", statsHandler.TopCreators)
	stats.GET("/maintenances-trend", statsHandler.MaintenanceTrend)
	stats.GET("/latest-maintenance", statsHandler.LatestMaintenance)
	stats.GET("/latest-equipos", statsHandler.LatestEquipment)
	stats.GET("/equipment-by-status", statsHandler.EquipmentByStatus)
	stats.GET("/maintenance-by-status", statsHandler.MaintenanceByStatus)
	stats.GET("/recent-activity", statsHandler.RecentActivity)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
