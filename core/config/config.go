package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Server    ServerConfig
		Database  DatabaseConfig
		Redis     RedisConfig
		JWT       JWTConfig
		GoogleAPI GoogleAPIConfig
		Admin     AdminConfig
		Events    EventsConfig
		LogLevel  string
	}

	ServerConfig struct {
		Host    string
		Port    int
		BaseURL string
	}

	DatabaseConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	JWTConfig struct {
		Secret string
	}

	GoogleAPIConfig struct {
		ClientID     string
		ClientSecret string
		RedirectURI  string
	}

	// AdminConfig seeds the single administrator account on startup.
	AdminConfig struct {
		Email    string
		Password string
	}

	// EventsConfig holds the authorization policy toggles for event
	// submission and owner lookup. Both behaviors varied across deployed
	// frontends, so they are configuration rather than code.
	EventsConfig struct {
		RequireAuthToSubmit bool
		VerifyOwnerOnList   bool
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (when present) and the environment into the process config.
func Load() error {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("SERVER_BASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "event_booking")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("EVENTS_REQUIRE_AUTH_TO_SUBMIT", false)
	v.SetDefault("EVENTS_VERIFY_OWNER_ON_LIST", false)

	cfg := &Config{
		Server: ServerConfig{
			Host:    v.GetString("SERVER_HOST"),
			Port:    v.GetInt("SERVER_PORT"),
			BaseURL: v.GetString("SERVER_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		GoogleAPI: GoogleAPIConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Events: EventsConfig{
			RequireAuthToSubmit: v.GetBool("EVENTS_REQUIRE_AUTH_TO_SUBMIT"),
			VerifyOwnerOnList:   v.GetBool("EVENTS_VERIFY_OWNER_ON_LIST"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return nil
}

// Get returns the loaded config. It panics when Load has not run; use
// GetSafe in code paths that may execute before startup finishes.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: not loaded")
	}
	return instance
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil, false
	}
	return instance, true
}

// Set replaces the process config. Tests use it to install fixtures.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
