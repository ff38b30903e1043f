package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type LinkedInConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// IsConfigured returns true if all required LinkedIn configuration is present
func (c LinkedInConfig) IsConfigured() bool {
	return c.ClientID != "" &&
		c.ClientSecret != "" &&
		c.RedirectURI != ""
}

type AuthConfig struct {
	JWTSecret   string
	StateSecret string
}

// IsConfigured returns true if all required auth configuration is present
func (c AuthConfig) IsConfigured() bool {
	return c.JWTSecret != "" && c.StateSecret != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	AlertWebhookURL    string // Optional incoming-webhook URL for error alerts
	ActivityWebhookURL string // Optional incoming-webhook URL for share activity notifications
	LogsURL            string // Optional link embedded in alert messages

	LinkedInConfig LinkedInConfig
	AuthConfig     AuthConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	jwtSecret, err := getEnvRequired("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",
		AlertWebhookURL:    os.Getenv("ALERT_WEBHOOK_URL"),
		ActivityWebhookURL: os.Getenv("ACTIVITY_WEBHOOK_URL"),
		LogsURL:            os.Getenv("LOGS_URL"),

		// LinkedIn configuration (optional unless strict)
		LinkedInConfig: LinkedInConfig{
			ClientID:     os.Getenv("LINKEDIN_CLIENT_ID"),
			ClientSecret: os.Getenv("LINKEDIN_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("LINKEDIN_REDIRECT_URI"),
		},

		AuthConfig: AuthConfig{
			JWTSecret: jwtSecret,
			// The state secret signs OAuth state tokens. It falls back to the
			// JWT secret so a single-secret deployment still works.
			StateSecret: getEnvWithDefault("OAUTH_STATE_SECRET", jwtSecret),
		},
	}

	// Log which integrations are configured
	if config.LinkedInConfig.IsConfigured() {
		log.Printf("✅ LinkedIn integration configured")
	} else {
		log.Printf("⚠️ LinkedIn integration not configured - LinkedIn features will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("LinkedIn integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
