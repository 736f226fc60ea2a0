// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port   string
	AppEnv string

	// Origin allowed to call the API (the single trusted frontend).
	ClientOrigin string

	// Document database holding post records and the GridFS media bucket.
	MongoURI string
	MongoDB  string

	// Blob backend selection: "gridfs" (default), "minio", or "memory".
	BlobBackend string

	// Object storage (only used when BlobBackend is "minio").
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Legacy local uploads directory served under /api/uploads/.
	UploadDir string
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:3000"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "feedline"),

		BlobBackend: getEnv("BLOB_BACKEND", "gridfs"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "media"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
