package config

import (
	"os"
	"strconv"
)

// MinIOConfig holds object storage settings for the optional S3-compatible
// upload backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port string

	// DataFile is the path of the flat JSON file holding all collections.
	DataFile string

	// UploadDir is the directory uploaded images are written to when the
	// disk backend is active.
	UploadDir string

	// UploadMaxBytes caps a single uploaded file. Zero means unbounded.
	UploadMaxBytes int64

	// BodyLimitBytes caps the HTTP request body accepted by the server.
	BodyLimitBytes int

	// TrustProxy makes public upload URLs honor X-Forwarded-Proto, for
	// deployments behind a TLS-terminating reverse proxy.
	TrustProxy bool

	// StorageBackend selects the upload backend: "disk" (default) or "s3".
	StorageBackend string

	MinIO MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "5001"),
		DataFile:       getEnv("DATA_FILE", "database.json"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: getEnvInt64("UPLOAD_MAX_BYTES", 0), // e.g. 5242880 for a 5MB cap
		BodyLimitBytes: getEnvInt("BODY_LIMIT_BYTES", 50*1024*1024),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
		StorageBackend: getEnv("STORAGE_BACKEND", "disk"),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
