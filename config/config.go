package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration parameters read from environment variables.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"5001"`

	// API key for mutating routes. Empty disables the gate (local dev).
	AdminAPIKey string `envconfig:"ADMIN_API_KEY"`

	// Comma-separated origins of the admin portal and the public site.
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:3001,http://localhost:3002"`

	// Scheduled CSV snapshot of all entity tables to S3.
	SnapshotEnabled  bool   `envconfig:"SNAPSHOT_ENABLED" default:"false"`
	SnapshotSchedule string `envconfig:"SNAPSHOT_CRON_SCHEDULE" default:"0 2 * * *"`

	SnapshotS3Key    string `envconfig:"SNAPSHOT_S3_KEY"`
	SnapshotS3Secret string `envconfig:"SNAPSHOT_S3_SECRET"`
	SnapshotS3URL    string `envconfig:"SNAPSHOT_S3_URL"`
	SnapshotS3Region string `envconfig:"SNAPSHOT_S3_REGION"`
	SnapshotS3Bucket string `envconfig:"SNAPSHOT_S3_BUCKET"`
	KeepSnapshots    int    `envconfig:"KEEP_SNAPSHOTS" default:"4"`
}

// DSN returns the Data Source Name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// AllowedOrigins splits the configured CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
