package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftcourier/tracking-api/internal/api"
	"github.com/swiftcourier/tracking-api/internal/infrastructure/db/mongo"
	"github.com/swiftcourier/tracking-api/internal/infrastructure/db/redis"
	"github.com/swiftcourier/tracking-api/internal/pkg/config"
	"github.com/swiftcourier/tracking-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
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

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, client, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	users := mongo.NewUserRepository(db)
	if err := mongo.SeedAdmin(ctx, users, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name, log); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	e := api.NewRouter(client, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting API server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, client *mongodriver.Client, db *mongodriver.Database) error {
	if err := mongo.NewShipmentRepository(client, db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewEventRepository(client, db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewNotificationRepository(db).EnsureIndexes(ctx)
}
