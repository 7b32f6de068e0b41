package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"

	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	HTTPPort  string
	BodyLimit int

	FetchMode      string
	FetchTimeout   time.Duration
	FetchRateLimit float64
	UserAgent      string
	InsecureTLS    bool
	PageLoadDelay  time.Duration
	MaxBrowserTabs int

	SessionStore         string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	RedisURL string
	MongoURL string
	MongoDB  string
	NatsURL  string
}

func Load() *Config {
	return &Config{
		HTTPPort:  getEnv("PORT", "5000"),
		BodyLimit: getEnvInt("BODY_LIMIT", 4*1024*1024),

		FetchMode:      strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchRateLimit: getEnvFloat("FETCH_RATE_LIMIT", 0),
		UserAgent:      getEnv("USER_AGENT", ""),
		InsecureTLS:    getEnvBool("FETCH_INSECURE_TLS", false),
		PageLoadDelay:  getEnvDuration("PAGE_LOAD_DELAY", 2*time.Second),
		MaxBrowserTabs: getEnvInt("MAX_BROWSER_TABS", 4),

		SessionStore:         strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		SessionTTL:           getEnvDuration("SESSION_TTL", time.Hour),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		MongoURL: getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "payscraper"),
		NatsURL:  getEnv("NATS_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
