// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mixbeat/internal/config"
	"mixbeat/internal/repositories"
	"mixbeat/internal/repositories/cache"
	"mixbeat/internal/routes"
	"mixbeat/internal/services/pix"
	"mixbeat/internal/services/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !config.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repositories.ConnectPostgres()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}
	defer sqlDB.Close()
	log.Info().Msg("connected to postgres")

	mongoClient, err := repositories.ConnectMongo(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer mongoClient.Disconnect(context.Background())
	log.Info().Msg("connected to mongo")

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	cacheService := cache.NewCacheService(redisClient, config.GetDurationEnv("CACHE_TTL", 10*time.Minute))
	defer cacheService.Close()
	if err := cacheService.HealthCheck(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without warm cache")
	}

	storageService, err := storage.NewService(ctx, storage.Config{
		Endpoint:  config.GetEnv("STORAGE_ENDPOINT", "localhost:9000"),
		AccessKey: config.GetEnv("STORAGE_ACCESS_KEY", ""),
		SecretKey: config.GetEnv("STORAGE_SECRET_KEY", ""),
		Bucket:    config.GetEnv("STORAGE_BUCKET", "mixbeat-media"),
		UseSSL:    config.GetEnv("STORAGE_USE_SSL", "false") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	app := fiber.New(fiber.Config{
		AppName:      "mixbeat",
		ReadTimeout:  config.GetDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: config.GetDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		BodyLimit:    config.GetIntEnv("HTTP_BODY_LIMIT", 50*1024*1024),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	// Payment endpoints are the abuse-prone surface.
	app.Use("/api/wallet/pix", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("PIX_RATE_LIMIT", 10),
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	wiring := routes.SetupRoutes(app, routes.Deps{
		DB:      db,
		Mongo:   mongoClient,
		MongoDB: config.GetEnv("MONGO_DB", "mixbeat"),
		Cache:   cacheService,
		Storage: storageService,
	})

	sweep := pix.NewSweepJob(
		wiring.WalletRepo,
		wiring.Pix,
		config.GetDurationEnv("PIX_SWEEP_INTERVAL", time.Minute),
		config.GetDurationEnv("PIX_PENDING_HORIZON", 30*time.Minute),
	)
	go sweep.Start(ctx)
	defer sweep.Stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
