package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Search    SearchConfig
	Matching  MatchingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds price feed configuration. BaseURL may be empty, in
// which case requests must carry their own offer table.
type CatalogConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// SearchConfig bounds the combination search and the response size
type SearchConfig struct {
	PairStoreLimit     int `mapstructure:"pair_store_limit"`
	TripleStoreLimit   int `mapstructure:"triple_store_limit"`
	MaxRecommendations int `mapstructure:"max_recommendations"`
}

// MatchingConfig holds list-item name resolution configuration
type MatchingConfig struct {
	MinConfidence       float64 `mapstructure:"min_confidence"`
	EnableFuzzyMatching bool    `mapstructure:"enable_fuzzy_matching"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" is the only supported type
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`
	Catalog int `mapstructure:"catalog"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/smartcart/")

	// Environment variable settings
	v.SetEnvPrefix("SMARTCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults; empty base URL means no feed is configured and
	// requests must carry their own offers. Registering the keys lets
	// AutomaticEnv pick up SMARTCART_CATALOG_* overrides.
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.api_key", "")

	// Search defaults: top-K cutoffs for the combination search. These bound
	// the pair/triple search cost; raising them trades latency for a wider
	// candidate set.
	v.SetDefault("search.pair_store_limit", 10)
	v.SetDefault("search.triple_store_limit", 8)
	v.SetDefault("search.max_recommendations", 2)

	// Matching defaults
	v.SetDefault("matching.min_confidence", 60.0)
	v.SetDefault("matching.enable_fuzzy_matching", true)
	v.SetDefault("matching.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.catalog", 1000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL != "" && config.Catalog.APIKey == "" {
		return fmt.Errorf("catalog API key is required when a feed URL is set (set SMARTCART_CATALOG_API_KEY)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Search.PairStoreLimit < 2 {
		return fmt.Errorf("search.pair_store_limit must be at least 2, got: %d", config.Search.PairStoreLimit)
	}
	if config.Search.TripleStoreLimit < 3 {
		return fmt.Errorf("search.triple_store_limit must be at least 3, got: %d", config.Search.TripleStoreLimit)
	}
	if config.Search.MaxRecommendations < 1 {
		return fmt.Errorf("search.max_recommendations must be at least 1, got: %d", config.Search.MaxRecommendations)
	}

	return nil
}
