package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from
// environment variables.
type Config struct {
	Port      string `mapstructure:"PORT"`
	GinMode   string `mapstructure:"GIN_MODE"`
	APIPrefix string `mapstructure:"API_PREFIX"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	MLServiceURL string `mapstructure:"ML_SERVICE_URL"`

	ClientURL string `mapstructure:"CLIENT_URL"`
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("API_PREFIX", "/api/v1")

	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("API_PREFIX")
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("ML_SERVICE_URL")
	viper.BindEnv("CLIENT_URL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.MLServiceURL == "" {
		return nil, errors.New("ML_SERVICE_URL is required")
	}

	return &cfg, nil
}

// FirebaseConfigured reports whether identity-provider credentials are
// present. When false the server starts in degraded mode: every
// authenticated route answers 503 instead of the process crashing.
func (c *Config) FirebaseConfigured() bool {
	if c.FirebaseProjectID == "" {
		return false
	}
	return c.GoogleApplicationCredentials != "" || c.FirebaseServiceAccountJSONBase64 != ""
}

// AllowedOrigins splits CLIENT_URL into the CORS allow-list.
func (c *Config) AllowedOrigins() []string {
	if c.ClientURL == "" {
		return nil
	}
	parts := strings.Split(c.ClientURL, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
