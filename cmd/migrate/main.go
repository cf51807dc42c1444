package main

import (
	"context"
	"time"

	mongoMigration "hotelms/internal/migrations/mongo"
	"hotelms/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	err := mongoMigration.RunMigration(ctx, db, cfg.Log)
	cfg.GracefulShutdown()
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
