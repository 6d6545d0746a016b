package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	AllowOrigins    []string
	LogstashTCPAddr string

	LogstashQueueSize    int
	LogstashDialTimeout  time.Duration
	LogstashWriteTimeout time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionKeyPrefix string
	GuestDisplayName string

	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOBucketDestinations string
	MinIOPublicURL          string

	DestinationImageMaxBytes     int64
	DestinationImageMaxDimension int

	EnableDestinationView bool
	EnableAdminCreate     bool
	EnableAdminUpdate     bool
	EnableAdminDelete     bool
}

// ImageUploadEnabled reports whether object storage is configured.
func (c Config) ImageUploadEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOBucketDestinations != ""
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("DESTINATION_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	maxDimension := 3840
	if v, err := strconv.Atoi(getenv("DESTINATION_IMAGE_MAX_DIMENSION", "3840")); err == nil && v > 0 {
		maxDimension = v
	}

	queueSize := 1024
	if v, err := strconv.Atoi(getenv("LOGSTASH_QUEUE_SIZE", "1024")); err == nil && v > 0 {
		queueSize = v
	}

	redisDB := 0
	if v, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil && v >= 0 {
		redisDB = v
	}

	endpoint := getenv("MINIO_ENDPOINT", "")
	bucket := getenv("MINIO_BUCKET_DESTINATIONS", "")
	if endpoint != "" && bucket == "" {
		bucket = "explorenusa-destinations"
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		LogstashQueueSize:    queueSize,
		LogstashDialTimeout:  durationEnv("LOGSTASH_DIAL_TIMEOUT", 2*time.Second),
		LogstashWriteTimeout: durationEnv("LOGSTASH_WRITE_TIMEOUT", time.Second),

		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          redisDB,
		SessionKeyPrefix: getenv("SESSION_KEY_PREFIX", "explorenusa"),
		GuestDisplayName: getenv("GUEST_DISPLAY_NAME", "Tamu"),

		MinIOEndpoint:           endpoint,
		MinIOAccessKey:          getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketDestinations: bucket,
		MinIOPublicURL:          getenv("MINIO_PUBLIC_URL", ""),

		DestinationImageMaxBytes:     imageMax,
		DestinationImageMaxDimension: maxDimension,

		EnableDestinationView: getenv("ENABLE_DESTINATION_VIEW", "true") == "true",
		EnableAdminCreate:     getenv("ENABLE_ADMIN_CREATE", "true") == "true",
		EnableAdminUpdate:     getenv("ENABLE_ADMIN_UPDATE", "true") == "true",
		EnableAdminDelete:     getenv("ENABLE_ADMIN_DELETE", "true") == "true",
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}

// durationEnv parses values such as "2s" or "500ms".
func durationEnv(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(k, ""))
	if err != nil || v <= 0 {
		return d
	}
	return v
}
