// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Auth strategies.
const (
	AuthStrategySession = "session"
	AuthStrategyBearer  = "bearer"
)

// Session store backends.
const (
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

const defaultSessionSecret = "commons-dev-session-secret"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env            string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	BodyLimitMB    int    `mapstructure:"BODY_LIMIT_MB"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBSchemaMode             string `mapstructure:"DB_SCHEMA_MODE"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	RedisURL string `mapstructure:"REDIS_URL"`

	AuthStrategy  string `mapstructure:"AUTH_STRATEGY"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	SessionStore  string `mapstructure:"SESSION_STORE"`
	IDPURL        string `mapstructure:"IDP_URL"`
	IDPServiceKey string `mapstructure:"IDP_SERVICE_KEY"`

	OpenAIAPIKey                string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL               string `mapstructure:"OPENAI_BASE_URL"`
	TranscriptionTimeoutSeconds int    `mapstructure:"TRANSCRIPTION_TIMEOUT_SECONDS"`

	TracingEnabled  bool   `mapstructure:"TRACING_ENABLED"`
	TracingExporter string `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string `mapstructure:"OTLP_ENDPOINT"`

	SeedOnStart bool `mapstructure:"SEED_ON_START"`
}

// LoadConfig loads application configuration from .env, config files and environment variables.
func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			log.Printf("No profile-specific config 'config.%s.yml' found, using environment only", env)
		} else {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("BODY_LIMIT_MB", 25)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "commons")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SCHEMA_MODE", "hybrid")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("AUTH_STRATEGY", AuthStrategySession)
	viper.SetDefault("SESSION_SECRET", defaultSessionSecret)
	viper.SetDefault("SESSION_STORE", SessionStoreDatabase)
	viper.SetDefault("IDP_URL", "")
	viper.SetDefault("IDP_SERVICE_KEY", "")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("TRANSCRIPTION_TIMEOUT_SECONDS", 60)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("SEED_ON_START", false)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.AuthStrategy = strings.ToLower(strings.TrimSpace(c.AuthStrategy))
	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	c.IDPURL = strings.TrimRight(strings.TrimSpace(c.IDPURL), "/")
	c.OpenAIBaseURL = strings.TrimRight(strings.TrimSpace(c.OpenAIBaseURL), "/")
}

// IsProduction reports whether the config targets a production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DBHost == "" || c.DBName == "" {
		return errors.New("DB_HOST and DB_NAME are required")
	}

	switch c.AuthStrategy {
	case AuthStrategySession:
		switch c.SessionStore {
		case SessionStoreDatabase, SessionStoreRedis:
		default:
			return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
		}
	case AuthStrategyBearer:
		if c.IDPURL == "" || c.IDPServiceKey == "" {
			return errors.New("IDP_URL and IDP_SERVICE_KEY are required when AUTH_STRATEGY=bearer")
		}
	default:
		return fmt.Errorf("unsupported AUTH_STRATEGY %q", c.AuthStrategy)
	}

	if c.IsProduction() {
		if c.SessionSecret == "" || c.SessionSecret == defaultSessionSecret || len(c.SessionSecret) < 32 {
			return errors.New("a SESSION_SECRET of at least 32 characters is required in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
		if c.AllowedOrigins == "*" {
			return errors.New("ALLOWED_ORIGINS cannot be '*' with credentialed sessions")
		}
	} else if c.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is empty; /api/transcribe will fail until it is set.")
	}

	return nil
}
