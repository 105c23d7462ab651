package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/config"
	"github.com/siriassis-creator/Sit-logistics-app/internal/api/routes"
	"github.com/siriassis-creator/Sit-logistics-app/internal/auth"
	"github.com/siriassis-creator/Sit-logistics-app/internal/notify"
	"github.com/siriassis-creator/Sit-logistics-app/internal/saga"
	"github.com/siriassis-creator/Sit-logistics-app/internal/socket"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

func main() {
	// 1. Load .env for local development, then the configuration
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	// 2. Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	st := store.NewMongo(client.Database(cfg.Mongo.DBName), logger)

	// 3. Session tokens
	expiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		logger.Fatal("invalid jwt expiration", zap.Error(err))
	}
	issuer := &auth.TokenIssuer{Secret: []byte(cfg.JWT.Secret), Expiration: expiration}

	// 4. Domain services
	transitions := &saga.Transitions{Store: st, Runner: saga.NewRunner(logger)}
	notifier := notify.New(cfg.Notify.DriverWebhookURL, logger)
	wsHub := socket.NewHub(logger)

	// 5. Router
	router := routes.SetupRouter(cfg, st, issuer, transitions, notifier, wsHub, logger)

	// 6. Start server
	logger.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
