// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds the full application configuration.
type Config struct {
	DB        DBConfig
	Server    ServerConfig
	S3        S3Config
	Collector CollectorConfig
}

// DBConfig holds PostgreSQL connection parameters.
type DBConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	DBName  string
	SSLMode string
}

// DSN returns a PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Pass +
		"@" + c.Host + ":" + strconv.Itoa(c.Port) +
		"/" + c.DBName + "?sslmode=" + c.SSLMode
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port string
	Host string
}

// Addr returns the full listen address (host:port).
func (c ServerConfig) Addr() string {
	return c.Host + c.Port
}

// S3Config holds S3-compatible object storage parameters for the raw-text
// snapshot archive. An empty endpoint disables archiving.
type S3Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
}

// CollectorConfig holds parameters for the collection pipeline.
type CollectorConfig struct {
	// NewsAPIKey enables the NewsAPI collector when non-empty.
	NewsAPIKey string
	// MaxQueries caps how many keyword-derived search queries each
	// collector runs per pass.
	MaxQueries int
	// MaxPerSource caps how many new documents one collector may ingest
	// per pass.
	MaxPerSource int
	// DailyBudget caps total documents ingested per UTC day.
	DailyBudget int
	// ScrapeBelow fetches the article page with the scraper when a feed
	// snippet is shorter than this many characters. Zero disables page
	// scraping entirely.
	ScrapeBelow int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DB: DBConfig{
			Host:    envOr("DB_HOST", "localhost"),
			Port:    envOrInt("DB_PORT", 5432),
			User:    envOr("DB_USER", "campaignwatch"),
			Pass:    envOr("DB_PASS", "campaignwatch"),
			DBName:  envOr("DB_NAME", "campaignwatch"),
			SSLMode: envOr("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: envOr("SERVER_PORT", ":8080"),
			Host: envOr("SERVER_HOST", ""),
		},
		S3: S3Config{
			Endpoint:  envOr("S3_ENDPOINT", ""),
			Bucket:    envOr("S3_BUCKET", "campaignwatch-snapshots"),
			AccessKey: envOr("S3_ACCESS_KEY", ""),
			SecretKey: envOr("S3_SECRET_KEY", ""),
			Region:    envOr("S3_REGION", "ap-south-1"),
		},
		Collector: CollectorConfig{
			NewsAPIKey:   envOr("NEWSAPI_KEY", ""),
			MaxQueries:   envOrInt("COLLECTOR_MAX_QUERIES", 5),
			MaxPerSource: envOrInt("COLLECTOR_MAX_PER_SOURCE", 25),
			DailyBudget:  envOrInt("COLLECTOR_DAILY_BUDGET", 500),
			ScrapeBelow:  envOrInt("COLLECTOR_SCRAPE_BELOW", 400),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
