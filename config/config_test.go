package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "transactions", cfg.MongoDatabase)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Contains(t, cfg.SeedURL, "product_transaction.json")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("SEED_URL", "http://localhost:9000/feed.json")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "http://localhost:9000/feed.json", cfg.SeedURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := &Config{
		Port:         "99999",
		StoreBackend: "postgres",
		SeedURL:      "ftp://feed",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid port "99999"`)
	assert.Contains(t, err.Error(), `invalid store backend "postgres"`)
	assert.Contains(t, err.Error(), `invalid seed URL "ftp://feed"`)
	assert.Contains(t, err.Error(), "invalid HTTP timeout")
}

func TestValidateMongoSettings(t *testing.T) {
	cfg := &Config{
		Port:         "3000",
		StoreBackend: BackendMongo,
		SeedURL:      "https://example.com/feed.json",
		HTTPTimeout:  time.Second,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI not set")
}

func TestConnectToMongoRequiresURI(t *testing.T) {
	_, err := ConnectToMongo(context.Background(), "")
	assert.EqualError(t, err, "MONGO_URI not set")
}
