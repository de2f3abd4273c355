package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL     string
	ServerPort      int
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	RedisAddress    string
	RedisPassword   string
	RedisDB         int
	LogLevel        string
}

// DefaultJWTSecret is the fallback signing secret when JWT_SECRET is unset.
// Unsafe outside local development; main logs a warning when it is in effect.
const DefaultJWTSecret = "default_secret_key"

func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL",
		"SERVER_PORT",
		"JWT_SECRET",
		"JWT_EXPIRES_IN",
		"JWT_REFRESH_EXPIRES_IN",
		"REDIS_ADDRESS",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"LOG_LEVEL",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("SERVER_PORT", 3000)
	viper.SetDefault("JWT_SECRET", DefaultJWTSecret)
	viper.SetDefault("JWT_EXPIRES_IN", 3600)
	viper.SetDefault("JWT_REFRESH_EXPIRES_IN", 2592000)

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	accessTTL := viper.GetInt64("JWT_EXPIRES_IN")
	if accessTTL <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be a positive number of seconds")
	}
	refreshTTL := viper.GetInt64("JWT_REFRESH_EXPIRES_IN")
	if refreshTTL <= 0 {
		return nil, fmt.Errorf("JWT_REFRESH_EXPIRES_IN must be a positive number of seconds")
	}

	return &Config{
		DatabaseURL:     dbURL,
		ServerPort:      viper.GetInt("SERVER_PORT"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		AccessTokenTTL:  time.Duration(accessTTL) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTTL) * time.Second,
		RedisAddress:    viper.GetString("REDIS_ADDRESS"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		RedisDB:         viper.GetInt("REDIS_DB"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
	}, nil
}
