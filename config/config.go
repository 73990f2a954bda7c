package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server         ServerConfig
	OpenFoodFacts  OpenFoodFactsConfig `mapstructure:"openfoodfacts"`
	Cache          CacheConfig
	RateLimit      RateLimitConfig
	Recommendation RecommendationConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration
type OpenFoodFactsConfig struct {
	BaseURL                  string        `mapstructure:"base_url"`
	UserAgent                string        `mapstructure:"user_agent"`
	Timeout                  time.Duration `mapstructure:"timeout"`
	ProductRequestsPerMinute int           `mapstructure:"product_requests_per_minute"`
	SearchRequestsPerMinute  int           `mapstructure:"search_requests_per_minute"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "none", "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// RecommendationConfig controls the alternative recommender
type RecommendationConfig struct {
	MaxAlternatives int `mapstructure:"max_alternatives"`
	SearchPageSize  int `mapstructure:"search_page_size"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/claimcheck/")

	// Environment variable settings, e.g. CLAIMCHECK_SERVER_PORT
	v.SetEnvPrefix("CLAIMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env if present.
// Variables already set in the environment are never overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Open Food Facts defaults
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("openfoodfacts.user_agent", "ClaimCheck/1.0")
	v.SetDefault("openfoodfacts.timeout", "30s")
	v.SetDefault("openfoodfacts.product_requests_per_minute", 100)
	v.SetDefault("openfoodfacts.search_requests_per_minute", 10)

	// Cache defaults
	v.SetDefault("cache.type", "none")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Recommendation defaults
	v.SetDefault("recommendation.max_alternatives", 5)
	v.SetDefault("recommendation.search_page_size", 50)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("Open Food Facts base URL is required (set CLAIMCHECK_OPENFOODFACTS_BASE_URL)")
	}

	switch config.Cache.Type {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("cache type must be 'none', 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("per-IP rate limit cannot be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Recommendation.MaxAlternatives <= 0 {
		return fmt.Errorf("max alternatives must be positive, got: %d", config.Recommendation.MaxAlternatives)
	}

	return nil
}
