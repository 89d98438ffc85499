package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CORPUS_BACKEND", "CORPUS_SOURCE", "CORPUS_DIR", "SYNC_CHECK_INTERVAL", "STORAGE_MAX_TRIES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, BackendMemory, cfg.Corpus.Backend)
	assert.Equal(t, SourceDir, cfg.Corpus.Source)
	assert.Equal(t, "data", cfg.Corpus.Dir)
	assert.Zero(t, cfg.Sync.CheckInterval)
	assert.Equal(t, uint(4), cfg.Storage.MaxTries)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CORPUS_BACKEND", "postgres")
	t.Setenv("SYNC_CHECK_INTERVAL", "2s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("AWS_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, BackendPostgres, cfg.Corpus.Backend)
	assert.Equal(t, 2*time.Second, cfg.Sync.CheckInterval)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Corpus.Backend = "redis" }, "CORPUS_BACKEND"},
		{"unknown source", func(c *Config) { c.Corpus.Source = "ftp" }, "CORPUS_SOURCE"},
		{"bucket without credentials", func(c *Config) { c.Corpus.Source = SourceBucket }, "AWS_ACCESS_KEY_ID"},
		{"postgres without host", func(c *Config) { c.Corpus.Backend = BackendPostgres; c.Database.Host = "" }, "DB_HOST"},
		{"negative interval", func(c *Config) { c.Sync.CheckInterval = -time.Second }, "SYNC_CHECK_INTERVAL"},
		{"zero tries", func(c *Config) { c.Storage.MaxTries = 0 }, "STORAGE_MAX_TRIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			cfg.Corpus.Backend = BackendMemory
			cfg.Corpus.Source = SourceDir
			cfg.MinIO.AccessKeyID = ""
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := Load()
	cfg.Database.Host = "db"
	cfg.Database.DBName = "corpus"

	assert.Contains(t, cfg.GetDSN(), "host=db")
	assert.Contains(t, cfg.GetDSN(), "dbname=corpus")
}
