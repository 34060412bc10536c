// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rondreis/travel-office-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// RedisConfig holds Redis connection details for the booking result cache.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
	// CacheTTLSeconds bounds cached bookings; 0 stores without expiry,
	// matching the original behavior of no invalidation policy.
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" yaml:"cache_ttl_seconds"`
}

// CacheTTL returns the booking cache TTL as a duration.
func (c *RedisConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// TravelCompositorConfig holds Travel Compositor API credentials and
// connection settings.
type TravelCompositorConfig struct {
	BaseURL        string `mapstructure:"BASE_URL" yaml:"base_url"`
	Username       string `mapstructure:"USERNAME" yaml:"username"`
	Password       string `mapstructure:"PASSWORD" yaml:"password"`
	Microsite      string `mapstructure:"MICROSITE" yaml:"microsite"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// Timeout returns the upstream HTTP client timeout as a duration.
func (c *TravelCompositorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExternalServices holds API keys for optional external services.
type ExternalServices struct {
	PexelsAPIKey string `mapstructure:"PEXELS_API_KEY"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server           ServerConfig           `mapstructure:"SERVER" yaml:"server"`
	Redis            RedisConfig            `mapstructure:"REDIS" yaml:"redis"`
	TravelCompositor TravelCompositorConfig `mapstructure:"TRAVEL_COMPOSITOR" yaml:"travel_compositor"`
	ExternalServices ExternalServices       `mapstructure:"EXTERNAL_SERVICES" yaml:"external_services"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("REDIS.CACHE_TTL_SECONDS", 0)
	v.SetDefault("TRAVEL_COMPOSITOR.BASE_URL", "https://online.travelcompositor.com")
	v.SetDefault("TRAVEL_COMPOSITOR.TIMEOUT_SECONDS", 15)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"REDIS.CACHE_TTL_SECONDS", "REDIS_CACHE_TTL_SECONDS"},
		// Travel Compositor config
		{"TRAVEL_COMPOSITOR.BASE_URL", "TRAVEL_COMPOSITOR_BASE_URL"},
		{"TRAVEL_COMPOSITOR.USERNAME", "TRAVEL_COMPOSITOR_USERNAME"},
		{"TRAVEL_COMPOSITOR.PASSWORD", "TRAVEL_COMPOSITOR_PASSWORD"},
		{"TRAVEL_COMPOSITOR.MICROSITE", "TRAVEL_COMPOSITOR_MICROSITE"},
		{"TRAVEL_COMPOSITOR.TIMEOUT_SECONDS", "TRAVEL_COMPOSITOR_TIMEOUT_SECONDS"},
		// External services
		{"EXTERNAL_SERVICES.PEXELS_API_KEY", "PEXELS_API_KEY"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"travel_compositor_base_url", v.GetString("TRAVEL_COMPOSITOR.BASE_URL"),
		"travel_compositor_microsite", v.GetString("TRAVEL_COMPOSITOR.MICROSITE"),
		"redis_address", v.GetString("REDIS.ADDRESS"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.TravelCompositor.BaseURL == "" {
		return fmt.Errorf("travel compositor base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.TravelCompositor.BaseURL); err != nil {
		return fmt.Errorf("invalid travel compositor base URL: %w", err)
	}

	if cfg.IsProduction() {
		if cfg.TravelCompositor.Username == "" || cfg.TravelCompositor.Password == "" {
			return fmt.Errorf("travel compositor credentials are required in production")
		}
		if cfg.TravelCompositor.Microsite == "" {
			return fmt.Errorf("travel compositor microsite is required in production")
		}
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
