package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"

	RecordBackendFile     = "file"
	RecordBackendPostgres = "postgres"
	RecordBackendMinIO    = "minio"
)

type Config struct {
	Port         string
	RecordsPort  string
	AllowOrigins []string

	LogLevel        string
	LogEncoding     string
	LogstashTCPAddr string

	CatalogPath string
	SwaggerPath string

	BookingCacheBackend string
	BookingCacheDir     string
	BookingCacheKey     string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int

	RemoteBookingsURL   string
	RemoteMirrorTimeout time.Duration
	NATSURL             string

	RecordStoreBackend  string
	RecordStorePath     string
	DatabaseURL         string
	MinIOEndpoint       string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOUseSSL         bool
	MinIOBucketBookings string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	redisDB := 0
	if v, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil && v >= 0 {
		redisDB = v
	}

	return Config{
		Port:                getenv("PORT", "8080"),
		RecordsPort:         getenv("RECORDS_PORT", "3000"),
		AllowOrigins:        splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:            getenv("LOG_LEVEL", "info"),
		LogEncoding:         getenv("LOG_ENCODING", "json"),
		LogstashTCPAddr:     getenv("LOGSTASH_TCP_ADDR", ""),
		CatalogPath:         getenv("CATALOG_PATH", filepath.Join("data", "catalog.yaml")),
		SwaggerPath:         getenv("SWAGGER_PATH", filepath.Join("docs", "swagger.yaml")),
		BookingCacheBackend: strings.ToLower(getenv("BOOKING_CACHE_BACKEND", CacheBackendFile)),
		BookingCacheDir:     getenv("BOOKING_CACHE_DIR", defaultCacheDir()),
		BookingCacheKey:     getenv("BOOKING_CACHE_KEY", "bookings"),
		RedisAddr:           getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getenv("REDIS_PASSWORD", ""),
		RedisDB:             redisDB,
		RemoteBookingsURL:   getenv("REMOTE_BOOKINGS_URL", "http://localhost:3000"),
		RemoteMirrorTimeout: getduration("REMOTE_MIRROR_TIMEOUT", 5*time.Second),
		NATSURL:             getenv("NATS_URL", ""),
		RecordStoreBackend:  strings.ToLower(getenv("RECORD_STORE_BACKEND", RecordBackendFile)),
		RecordStorePath:     getenv("RECORD_STORE_PATH", filepath.Join("data", "bookings.json")),
		DatabaseURL:         getenv("DATABASE_URL", ""),
		MinIOEndpoint:       getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:      getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:      getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:         getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketBookings: getenv("MINIO_BUCKET_BOOKINGS", "fitcity-bookings"),
	}
}

// ValidateClient checks the keys needed by processes that own a booking store.
func (c Config) ValidateClient() error {
	var errs []error
	switch c.BookingCacheBackend {
	case CacheBackendFile:
		if strings.TrimSpace(c.BookingCacheDir) == "" {
			errs = append(errs, errors.New("BOOKING_CACHE_DIR is required for the file cache"))
		}
	case CacheBackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BOOKING_CACHE_BACKEND %q", c.BookingCacheBackend))
	}
	if strings.TrimSpace(c.BookingCacheKey) == "" {
		errs = append(errs, errors.New("BOOKING_CACHE_KEY must not be empty"))
	}
	if c.RemoteMirrorTimeout <= 0 {
		errs = append(errs, errors.New("REMOTE_MIRROR_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// ValidateRecords checks the keys needed by the booking record service.
func (c Config) ValidateRecords() error {
	switch c.RecordStoreBackend {
	case RecordBackendFile:
		if strings.TrimSpace(c.RecordStorePath) == "" {
			return errors.New("RECORD_STORE_PATH is required for the file record store")
		}
	case RecordBackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for the postgres record store")
		}
	case RecordBackendMinIO:
		var missing []string
		for key, val := range map[string]string{
			"MINIO_ENDPOINT":        c.MinIOEndpoint,
			"MINIO_ACCESS_KEY":      c.MinIOAccessKey,
			"MINIO_SECRET_KEY":      c.MinIOSecretKey,
			"MINIO_BUCKET_BOOKINGS": c.MinIOBucketBookings,
		} {
			if strings.TrimSpace(val) == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing env for minio record store: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown RECORD_STORE_BACKEND %q", c.RecordStoreBackend)
	}
	return nil
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitcity"
	}
	return filepath.Join(home, ".fitcity")
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

func getduration(k string, d time.Duration) time.Duration {
	raw := os.Getenv(k)
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", k, raw, d)
		return d
	}
	return v
}
