package config

import (
	"os"
	"testing"
)

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			envValue:     "",
			expected:     "default_value",
		},
		{
			name:         "should return empty string default",
			key:          "EMPTY_KEY",
			defaultValue: "",
			envValue:     "",
			expected:     "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			// Setup: set environment variable if provided
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key) // cleanup after test
			} else {
				os.Unsetenv(tt.key) // ensure it's not set
			}

			// Execute
			result := GetEnvWithDefault(tt.key, tt.defaultValue)

			// Assert
			if result != tt.expected {
				t.Errorf("GetEnvWithDefault() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Helper function to set multiple env vars
	setTestEnv := func() {
		os.Setenv("APP_PORT", "9000")
		os.Setenv("APP_HOST", "0.0.0.0")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("JWT_SECRET", "super_secret_jwt_key")
		os.Setenv("SITE_URL", "https://menus.example.com")
	}

	// Helper function to cleanup env vars
	cleanupTestEnv := func() {
		vars := []string{
			"APP_PORT", "APP_HOST", "LOG_LEVEL", "JWT_SECRET", "SITE_URL",
			"IMAGE_GEN_DAILY_LIMIT", "PUBLIC_IMAGE_GEN_DAILY_LIMIT",
		}
		for _, v := range vars {
			os.Unsetenv(v)
		}
	}

	t.Run("successful config load with all env vars", func(t *testing.T) {
		setTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()

		// Should not return error
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		// Verify all values
		if config.Port != 9000 {
			t.Errorf("Port = %d, expected 9000", config.Port)
		}
		if config.Host != "0.0.0.0" {
			t.Errorf("Host = %s, expected 0.0.0.0", config.Host)
		}
		if config.LogLevel != "debug" {
			t.Errorf("LogLevel = %s, expected debug", config.LogLevel)
		}
		if config.SiteURL != "https://menus.example.com" {
			t.Errorf("SiteURL = %s, expected https://menus.example.com", config.SiteURL)
		}
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("APP_PORT", "not_a_number")
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err == nil {
			t.Error("LoadConfig() should return error when APP_PORT is invalid")
		}
		if config != nil {
			t.Error("Config should be nil when error occurs")
		}
	})

	t.Run("should fail with invalid site URL", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("SITE_URL", "not a url")
		defer cleanupTestEnv()

		_, err := LoadConfig()

		if err == nil {
			t.Error("LoadConfig() should return error when SITE_URL is invalid")
		}
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err != nil {
			t.Fatalf("LoadConfig() returned unexpected error: %v", err)
		}

		// Check defaults
		if config.Port != 8080 {
			t.Errorf("Port = %d, expected default 8080", config.Port)
		}
		if config.Host != "localhost" {
			t.Errorf("Host = %s, expected default localhost", config.Host)
		}
		if config.ImageGenDailyLimit != DefaultImageGenDailyLimit {
			t.Errorf("ImageGenDailyLimit = %d, expected default %d", config.ImageGenDailyLimit, DefaultImageGenDailyLimit)
		}
	})
}

func TestImageGenDailyLimitPrecedence(t *testing.T) {
	cleanup := func() {
		os.Unsetenv("IMAGE_GEN_DAILY_LIMIT")
		os.Unsetenv("PUBLIC_IMAGE_GEN_DAILY_LIMIT")
	}

	t.Run("server variable wins over public variable", func(t *testing.T) {
		cleanup()
		defer cleanup()
		os.Setenv("IMAGE_GEN_DAILY_LIMIT", "50")
		os.Setenv("PUBLIC_IMAGE_GEN_DAILY_LIMIT", "10")

		if got := imageGenDailyLimit(); got != 50 {
			t.Errorf("imageGenDailyLimit() = %d, expected 50", got)
		}
	})

	t.Run("public variable used as fallback", func(t *testing.T) {
		cleanup()
		defer cleanup()
		os.Setenv("PUBLIC_IMAGE_GEN_DAILY_LIMIT", "10")

		if got := imageGenDailyLimit(); got != 10 {
			t.Errorf("imageGenDailyLimit() = %d, expected 10", got)
		}
	})

	t.Run("default when neither is set", func(t *testing.T) {
		cleanup()
		defer cleanup()

		if got := imageGenDailyLimit(); got != DefaultImageGenDailyLimit {
			t.Errorf("imageGenDailyLimit() = %d, expected %d", got, DefaultImageGenDailyLimit)
		}
	})

	t.Run("non-numeric server variable falls through", func(t *testing.T) {
		cleanup()
		defer cleanup()
		os.Setenv("IMAGE_GEN_DAILY_LIMIT", "lots")
		os.Setenv("PUBLIC_IMAGE_GEN_DAILY_LIMIT", "12")

		if got := imageGenDailyLimit(); got != 12 {
			t.Errorf("imageGenDailyLimit() = %d, expected 12", got)
		}
	})
}

// Benchmark tests (optional but good practice)
func BenchmarkGetEnvWithDefault(b *testing.B) {
	os.Setenv("BENCH_KEY", "test_value")
	defer os.Unsetenv("BENCH_KEY")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}
