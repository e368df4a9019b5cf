// @title        Maintenance System API
// @version      1.0
// @description  Equipment and maintenance tracking API with JWT authentication.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/maintrack/maintenance-system/internal/api"
	"github.com/maintrack/maintenance-system/internal/auth"
	"github.com/maintrack/maintenance-system/internal/infrastructure/config"
	mongodb "github.com/maintrack/maintenance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/maintrack/maintenance-system/internal/infrastructure/db/redis"
	"github.com/maintrack/maintenance-system/internal/infrastructure/queue"
	s3store "github.com/maintrack/maintenance-system/internal/infrastructure/storage/s3"
	"github.com/maintrack/maintenance-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	equipmentRepo := mongodb.NewEquipmentRepository(db)
	groupRepo := mongodb.NewGroupRepository(db)
	maintenanceRepo := mongodb.NewMaintenanceRepository(db)
	attachmentRepo := mongodb.NewAttachmentRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":       userRepo.EnsureIndexes,
		"equipment":   equipmentRepo.EnsureIndexes,
		"groups":      groupRepo.EnsureIndexes,
		"maintenance": maintenanceRepo.EnsureIndexes,
		"attachments": attachmentRepo.EnsureIndexes,
		"activity":    activityRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Object store ---
	blob, err := s3store.NewStore(ctx, s3store.Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store setup failed")
	}

	// --- Async activity writer ---
	recorder := queue.NewDispatcher(0, activityRepo, log)
	recorder.Start(ctx)

	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(db, rdb, blob, activityRepo, recorder, codec, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
	}
	log.Info().Msg("server stopped")
}
