package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	CatalogCSV   string
	SeedDemo     bool
	RecentLimit  int
	ShippingDays int
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		CatalogCSV:   envOrDefault("STORE_CATALOG_CSV", ""),
		SeedDemo:     envBool("STORE_SEED_DEMO", false),
		RecentLimit:  envInt("STORE_RECENT_LIMIT", 5),
		ShippingDays: envInt("STORE_SHIPPING_DAYS", 5),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
