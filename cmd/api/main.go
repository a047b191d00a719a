package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/config"
	"github.com/elysian-fields/feedback-services/api/internal/logger"
	"github.com/elysian-fields/feedback-services/api/internal/server"
)

func main() {
	cfg := config.Load()

	zapLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zapLogger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	var client *mongo.Client
	if cfg.NeedsMongo() {
		clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		var err error
		client, err = mongo.Connect(ctx, clientOptions)
		if err != nil {
			zapLogger.Fatal("MongoDB connection failed", zap.Error(err))
		}
	}

	app, err := server.New(ctx, cfg, zapLogger, client)
	if err != nil {
		zapLogger.Fatal("server assembly failed", zap.Error(err))
	}
	if err := app.Run(); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
