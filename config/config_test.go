package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SMARTCART_SERVER_PORT")
		os.Unsetenv("SMARTCART_SERVER_ENVIRONMENT")
		os.Unsetenv("SMARTCART_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("SMARTCART_CATALOG_BASE_URL")
		os.Unsetenv("SMARTCART_CATALOG_API_KEY")
		os.Unsetenv("SMARTCART_SEARCH_PAIR_STORE_LIMIT")
		os.Unsetenv("SMARTCART_SEARCH_TRIPLE_STORE_LIMIT")
		os.Unsetenv("SMARTCART_SEARCH_MAX_RECOMMENDATIONS")
		os.Unsetenv("SMARTCART_MATCHING_MIN_CONFIDENCE")
		os.Unsetenv("SMARTCART_CACHE_TYPE")
		os.Unsetenv("SMARTCART_CACHE_TTL")
		os.Unsetenv("SMARTCART_RATELIMIT_PER_IP")
		os.Unsetenv("SMARTCART_RATELIMIT_CATALOG")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "" {
			t.Errorf("Catalog.BaseURL = %s, want empty (no feed by default)", cfg.Catalog.BaseURL)
		}
		if cfg.Search.PairStoreLimit != 10 {
			t.Errorf("Search.PairStoreLimit = %d, want 10", cfg.Search.PairStoreLimit)
		}
		if cfg.Search.TripleStoreLimit != 8 {
			t.Errorf("Search.TripleStoreLimit = %d, want 8", cfg.Search.TripleStoreLimit)
		}
		if cfg.Search.MaxRecommendations != 2 {
			t.Errorf("Search.MaxRecommendations = %d, want 2", cfg.Search.MaxRecommendations)
		}
		if cfg.Matching.MinConfidence != 60.0 {
			t.Errorf("Matching.MinConfidence = %v, want 60", cfg.Matching.MinConfidence)
		}
		if !cfg.Matching.EnableFuzzyMatching {
			t.Error("Matching.EnableFuzzyMatching = false, want true")
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Catalog != 1000 {
			t.Errorf("RateLimit.Catalog = %d, want 1000", cfg.RateLimit.Catalog)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTCART_SERVER_PORT", "9090")
		os.Setenv("SMARTCART_SERVER_ENVIRONMENT", "production")
		os.Setenv("SMARTCART_CATALOG_BASE_URL", "https://feed.example.com")
		os.Setenv("SMARTCART_CATALOG_API_KEY", "custom-api-key")
		os.Setenv("SMARTCART_SEARCH_PAIR_STORE_LIMIT", "20")
		os.Setenv("SMARTCART_SEARCH_MAX_RECOMMENDATIONS", "5")
		os.Setenv("SMARTCART_CACHE_TTL", "24h")
		os.Setenv("SMARTCART_RATELIMIT_PER_IP", "200")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://feed.example.com" {
			t.Errorf("Catalog.BaseURL = %s, want https://feed.example.com", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.APIKey != "custom-api-key" {
			t.Errorf("Catalog.APIKey = %s, want custom-api-key", cfg.Catalog.APIKey)
		}
		if cfg.Search.PairStoreLimit != 20 {
			t.Errorf("Search.PairStoreLimit = %d, want 20", cfg.Search.PairStoreLimit)
		}
		if cfg.Search.MaxRecommendations != 5 {
			t.Errorf("Search.MaxRecommendations = %d, want 5", cfg.Search.MaxRecommendations)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
	})

	t.Run("fails validation when feed is set without an API key", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTCART_CATALOG_BASE_URL", "https://feed.example.com")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing API key")
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTCART_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation for undersized search limits", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTCART_SEARCH_PAIR_STORE_LIMIT", "1")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for pair limit below 2")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{},
			Cache:   CacheConfig{Type: "memory"},
			Search: SearchConfig{
				PairStoreLimit:     10,
				TripleStoreLimit:   8,
				MaxRecommendations: 2,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("validates a feed with an API key", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog = CatalogConfig{BaseURL: "https://feed.example.com", APIKey: "key"}
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for a feed without an API key", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog = CatalogConfig{BaseURL: "https://feed.example.com"}
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for missing API key")
		}
	})

	t.Run("fails for invalid cache type", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "invalid-type"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails for a triple limit below three", func(t *testing.T) {
		cfg := valid()
		cfg.Search.TripleStoreLimit = 2
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for triple limit below 3")
		}
	})

	t.Run("fails for zero max recommendations", func(t *testing.T) {
		cfg := valid()
		cfg.Search.MaxRecommendations = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero max recommendations")
		}
	})
}
