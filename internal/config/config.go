package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"catalog/internal/apperrors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service consumes. It is loaded once at
// startup and passed down explicitly.
type Config struct {
	AppEnv      string
	AppPort     string
	LogLevel    string
	JWTSecret   string
	JWTExpires  time.Duration
	DatabaseDSN string
	RabbitMQURL string

	// Optional admin bootstrap: when all three are set, one ADMIN user is
	// seeded at startup. The public registration path stays USER-only.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment (and a .env file when
// present). A missing JWT secret or incomplete database settings is a
// fatal configuration error.
func Load() (*Config, error) {
	// The .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_EXPIRES_MINUTES", 60)
	viper.SetDefault("DB_HOST", "127.0.0.1")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.AutomaticEnv()

	cfg := &Config{
		AppEnv:        viper.GetString("APP_ENV"),
		AppPort:       viper.GetString("APP_PORT"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTExpires:    time.Duration(viper.GetInt("JWT_EXPIRES_MINUTES")) * time.Minute,
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
		AdminUsername: viper.GetString("ADMIN_USERNAME"),
		AdminEmail:    viper.GetString("ADMIN_EMAIL"),
		AdminPassword: viper.GetString("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, apperrors.Config("JWT_SECRET is not set")
	}

	dsn, err := databaseDSN()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseDSN = dsn

	return cfg, nil
}

// databaseDSN builds the postgres DSN, failing with a clear error when a
// mandatory variable is missing.
func databaseDSN() (string, error) {
	required := map[string]string{
		"DB_NAME":     viper.GetString("DB_NAME"),
		"DB_USER":     viper.GetString("DB_USER"),
		"DB_PASSWORD": viper.GetString("DB_PASSWORD"),
	}
	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", apperrors.Config(fmt.Sprintf("missing env vars: %s", strings.Join(missing, ", ")))
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		viper.GetString("DB_HOST"),
		viper.GetString("DB_PORT"),
		required["DB_USER"],
		required["DB_PASSWORD"],
		required["DB_NAME"],
		viper.GetString("DB_SSL_MODE"),
	), nil
}
