package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	StoreBackend    string
	SeedURL         string
	LogLevel        string
	HTTPTimeout     time.Duration
}

// Load reads .env when present, then the environment, falling back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "transactions")
	v.SetDefault("MONGO_COLLECTION", "transactions")
	v.SetDefault("STORE_BACKEND", BackendMongo)
	v.SetDefault("SEED_URL", "https://s3.amazonaws.com/roxiler.com/product_transaction.json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		MongoCollection: v.GetString("MONGO_COLLECTION"),
		StoreBackend:    strings.ToLower(v.GetString("STORE_BACKEND")),
		SeedURL:         v.GetString("SEED_URL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		HTTPTimeout:     v.GetDuration("HTTP_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q", c.Port))
	}

	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			problems = append(problems, "MONGO_URI not set")
		}
		if c.MongoDatabase == "" || c.MongoCollection == "" {
			problems = append(problems, "MONGO_DATABASE and MONGO_COLLECTION must be set")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be %q or %q", c.StoreBackend, BackendMongo, BackendMemory))
	}

	if parsed, err := url.Parse(c.SeedURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		problems = append(problems, fmt.Sprintf("invalid seed URL %q", c.SeedURL))
	}

	if c.HTTPTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid HTTP timeout %v", c.HTTPTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func ConnectToMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI not set")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}
