package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vacciprofile/config"
	"vacciprofile/storage"
)

// Takes one CSV snapshot of the whole dataset and uploads it to S3. Meant to
// be run from a host cron or as a one-off container next to the API server.
func main() {
	log.Println("starting snapshot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.SnapshotS3Bucket == "" {
		log.Fatal("SNAPSHOT_S3_BUCKET is not set")
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	s3Client, err := storage.NewS3Client(cfg)
	if err != nil {
		log.Fatalf("s3 client: %v", err)
	}

	snap := &storage.Snapshotter{
		Client: s3Client,
		Bucket: cfg.SnapshotS3Bucket,
		Keep:   cfg.KeepSnapshots,
		DB:     db,
		Log:    zlog,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := snap.Run(ctx); err != nil {
		log.Fatalf("snapshot: %v", err)
	}
	log.Println("snapshot finished.")
}
