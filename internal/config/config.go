package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr            string
	MongoURI        string
	MongoDatabase   string
	StoreCollection string
	Timeout         time.Duration
	Timezone        string
	ServerLog       *log.Logger
	JWTConfigs      []JWTConfig
	JWTAudience     string
	AllowedOrigins  []string
	// CacheTTL == 0 disables the store cache.
	CacheTTL  time.Duration
	CacheSize int
}

// Load reads an optional .env file and the environment. Missing admin auth
// configuration is fatal.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := loadFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	cfg.ServerLog.Printf("loaded config: addr=%q db=%q collection=%q timezone=%q cacheTTL=%s cacheSize=%d",
		cfg.Addr, cfg.MongoDatabase, cfg.StoreCollection, cfg.Timezone, cfg.CacheTTL, cfg.CacheSize)
	return cfg
}

func loadFromEnv() (Config, error) {
	timeout, err := parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration("AVAILABILITY_CACHE_TTL", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	cacheSize := 1024
	if raw := strings.TrimSpace(os.Getenv("AVAILABILITY_CACHE_SIZE")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return Config{}, fmt.Errorf("AVAILABILITY_CACHE_SIZE must be a non-negative integer, got %q", raw)
		}
		cacheSize = parsed
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_ADMIN_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_ADMIN_JWT_ISSUER", "delivery-admin-auth"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, errors.New("jwt secret not configured: set AUTH_ADMIN_JWT_SECRET")
	}

	return Config{
		Addr:            envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:        envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:   envOrDefault("MONGO_DB", "delivery"),
		StoreCollection: envOrDefault("STORE_COLLECTION", "stores"),
		Timeout:         timeout,
		Timezone:        envOrDefault("TIMEZONE", "America/Sao_Paulo"),
		ServerLog:       log.New(os.Stdout, "[delivery-availability-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:      jwtConfigs,
		JWTAudience:     strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins:  parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		CacheTTL:        cacheTTL,
		CacheSize:       cacheSize,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, raw)
	}
	return parsed, nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
