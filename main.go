package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"vacciprofile/config"
	"vacciprofile/models"
	"vacciprofile/services"
	"vacciprofile/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	csvRowsImported *prometheus.CounterVec
	csvRowsMerged   *prometheus.CounterVec
	csvRowsRejected *prometheus.CounterVec
)

func init() {
	csvRowsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csv_rows_imported_total",
			Help: "Total number of CSV rows accepted as new records.",
		},
		[]string{"kind"},
	)
	csvRowsMerged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csv_rows_merged_total",
			Help: "Total number of CSV rows merged into existing records.",
		},
		[]string{"kind"},
	)
	csvRowsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csv_rows_rejected_total",
			Help: "Total number of CSV rows rejected with a row error.",
		},
		[]string{"kind"},
	)
	prometheus.MustRegister(csvRowsImported, csvRowsMerged, csvRowsRejected)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminAPIKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.AdminAPIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

// newRouter wires the full API surface. Reads are public, mutations and the
// CSV routes sit behind the admin API key.
func newRouter(cfg *config.Config, db *gorm.DB, logging *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-KEY"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := apiKeyAuthMiddleware(cfg)
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})
	api.GET("/last-update", func(c *gin.Context) {
		row, err := services.LatestUpdate(db)
		if err != nil {
			respondError(c, logging, err)
			return
		}
		if row == nil {
			// Nothing recorded yet; the portal expects a timestamp either way.
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"lastUpdate": gin.H{
					"modelName":     "",
					"lastUpdatedAt": time.Now().UTC(),
				},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "lastUpdate": row})
	})

	setupVaccineRoutes(api, db, logging, admin)
	setupPathogenRoutes(api, db, logging, admin)
	setupManufacturerRoutes(api, db, logging, admin)
	setupLicensingDateRoutes(api, db, logging, admin)
	setupProductProfileRoutes(api, db, logging, admin)
	setupManufacturerProductRoutes(api, db, logging, admin)
	setupManufacturerSourceRoutes(api, db, logging, admin)
	setupManufacturerCandidateRoutes(api, db, logging, admin)
	setupNITAGRoutes(api, db, logging, admin)
	setupLicenserRoutes(api, db, logging, admin)
	setupCSVRoutes(api, db, logging, admin)

	return router
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to database.")

	logging.Info("Running database auto-migration...")
	if err := db.AutoMigrate(
		&models.Vaccine{},
		&models.Pathogen{},
		&models.Manufacturer{},
		&models.LicensingDate{},
		&models.ProductProfile{},
		&models.ManufacturerProduct{},
		&models.ManufacturerSource{},
		&models.ManufacturerCandidate{},
		&models.NITAG{},
		&models.Licenser{},
		&models.LastUpdate{},
	); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	router := newRouter(cfg, db, logging)

	if cfg.SnapshotEnabled {
		if cfg.SnapshotS3Bucket == "" {
			logging.Fatal("SNAPSHOT_ENABLED is set but SNAPSHOT_S3_BUCKET is empty")
		}
		s3Client, err := storage.NewS3Client(cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		snap := &storage.Snapshotter{
			Client: s3Client,
			Bucket: cfg.SnapshotS3Bucket,
			Keep:   cfg.KeepSnapshots,
			DB:     db,
			Log:    logging,
		}
		cronScheduler := cron.New()
		cronScheduler.AddFunc(cfg.SnapshotSchedule, func() {
			logging.Info("Running scheduled snapshot job...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if err := snap.Run(ctx); err != nil {
				logging.Error("Snapshot job failed", zap.Error(err))
			}
		})
		cronScheduler.Start()
		logging.Info("Snapshot schedule active", zap.String("schedule", cfg.SnapshotSchedule))
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}
