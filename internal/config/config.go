package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	SourceDir    = "dir"
	SourceBucket = "bucket"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Corpus   CorpusConfig
	Sync     SyncConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	CreateBucket    bool
}

// CorpusConfig selects where the corpus is served from.
type CorpusConfig struct {
	// Backend is "memory" or "postgres".
	Backend string
	// Source is where the memory backend reads its CSV files: "dir" or "bucket".
	Source string
	Dir    string
}

type SyncConfig struct {
	// CheckInterval memoises the published marker for this long. Zero checks
	// on every request.
	CheckInterval time.Duration
}

type StorageConfig struct {
	MaxTries         uint
	InitialInterval  time.Duration
	MaxInterval      time.Duration
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8010"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            getEnvOrDefault("DB_PORT", "5432"),
			User:            getEnvOrDefault("DB_USER", "postgres"),
			Password:        getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:          getEnvOrDefault("DB_NAME", "movie_corpus"),
			SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			QueryTimeout:    getDurationOrDefault("DB_QUERY_TIMEOUT", 10*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnvOrDefault("AWS_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnvOrDefault("AWS_BUCKET", "movie-api"),
			Region:          getEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1"),
			UseSSL:          getBoolOrDefault("AWS_USE_SSL", false),
			CreateBucket:    getBoolOrDefault("AWS_CREATE_BUCKET", false),
		},
		Corpus: CorpusConfig{
			Backend: getEnvOrDefault("CORPUS_BACKEND", BackendMemory),
			Source:  getEnvOrDefault("CORPUS_SOURCE", SourceDir),
			Dir:     getEnvOrDefault("CORPUS_DIR", "data"),
		},
		Sync: SyncConfig{
			CheckInterval: getDurationOrDefault("SYNC_CHECK_INTERVAL", 0),
		},
		Storage: StorageConfig{
			MaxTries:         uint(getIntOrDefault("STORAGE_MAX_TRIES", 4)),
			InitialInterval:  getDurationOrDefault("STORAGE_RETRY_INITIAL_INTERVAL", 100*time.Millisecond),
			MaxInterval:      getDurationOrDefault("STORAGE_RETRY_MAX_INTERVAL", 2*time.Second),
			FailureThreshold: uint32(getIntOrDefault("STORAGE_BREAKER_FAILURES", 5)),
			BreakerTimeout:   getDurationOrDefault("STORAGE_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

// GetDSN returns PostgreSQL connection string
func (c *Config) GetDSN() string {
	return c.Database.DSN()
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (c *Config) Validate() error {
	switch c.Corpus.Backend {
	case BackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case BackendMemory:
		if err := c.validateSource(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("CORPUS_BACKEND must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Corpus.Backend)
	}
	if c.Sync.CheckInterval < 0 {
		return fmt.Errorf("SYNC_CHECK_INTERVAL must not be negative")
	}
	if c.Storage.MaxTries == 0 {
		return fmt.Errorf("STORAGE_MAX_TRIES must be at least 1")
	}
	return nil
}

func (c *Config) validateSource() error {
	switch c.Corpus.Source {
	case SourceDir:
		if c.Corpus.Dir == "" {
			return fmt.Errorf("CORPUS_DIR is required for the dir source")
		}
	case SourceBucket:
		if c.MinIO.AccessKeyID == "" {
			return fmt.Errorf("AWS_ACCESS_KEY_ID is required for MinIO")
		}
		if c.MinIO.SecretAccessKey == "" {
			return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required for MinIO")
		}
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("AWS_ENDPOINT is required for MinIO")
		}
	default:
		return fmt.Errorf("CORPUS_SOURCE must be %q or %q, got %q", SourceDir, SourceBucket, c.Corpus.Source)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
