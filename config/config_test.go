package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
	}{
		{
			name:        "defaults only in development",
			envVars:     map[string]string{},
			expectError: false,
		},
		{
			name: "full production configuration",
			envVars: map[string]string{
				"SERVER_ENVIRONMENT":          "production",
				"PORT":                        "9090",
				"TRAVEL_COMPOSITOR_USERNAME":  "agent",
				"TRAVEL_COMPOSITOR_PASSWORD":  "secret",
				"TRAVEL_COMPOSITOR_MICROSITE": "rondreis",
			},
			expectError: false,
		},
		{
			name: "production without upstream credentials",
			envVars: map[string]string{
				"SERVER_ENVIRONMENT": "production",
			},
			expectError: true,
		},
		{
			name: "production without microsite",
			envVars: map[string]string{
				"SERVER_ENVIRONMENT":         "production",
				"TRAVEL_COMPOSITOR_USERNAME": "agent",
				"TRAVEL_COMPOSITOR_PASSWORD": "secret",
			},
			expectError: true,
		},
		{
			name: "invalid upstream base URL",
			envVars: map[string]string{
				"TRAVEL_COMPOSITOR_BASE_URL": "not a url",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := LoadConfig()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				assert.NotEmpty(t, cfg.Server.Port)
				assert.NotEmpty(t, cfg.TravelCompositor.BaseURL)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "https://online.travelcompositor.com", cfg.TravelCompositor.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.TravelCompositor.Timeout())
	assert.Equal(t, time.Duration(0), cfg.Redis.CacheTTL())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestEnvironmentOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "3000")
	os.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	os.Setenv("REDIS_CACHE_TTL_SECONDS", "900")
	os.Setenv("TRAVEL_COMPOSITOR_MICROSITE", "rondreis")
	os.Setenv("PEXELS_API_KEY", "px-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Address)
	assert.Equal(t, 15*time.Minute, cfg.Redis.CacheTTL())
	assert.Equal(t, "rondreis", cfg.TravelCompositor.Microsite)
	assert.Equal(t, "px-key", cfg.ExternalServices.PexelsAPIKey)
}
