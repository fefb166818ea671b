package config

import (
	"os"
	"strconv"

	"github.com/mbuchoff/niche-todo-backend/internal/constants"
)

type Config struct {
	DBDriver              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	GinMode               string
	GoogleClientID        string
	TokenSigningKey       string
	TokenKeyID            string
	RefreshTokenSalt      string
	AccessTokenTTLMinutes int
	RefreshTokenTTLDays   int
}

func Load() *Config {
	return &Config{
		DBDriver:              getEnv("DB_DRIVER", "mysql"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "3306"),
		DBUser:                getEnv("DB_USER", "todouser"),
		DBPassword:            getEnv("DB_PASSWORD", "todopassword"),
		DBName:                getEnv("DB_NAME", "niche_todo"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		TokenSigningKey:       getEnv("TOKEN_SIGNING_KEY", ""),
		TokenKeyID:            getEnv("TOKEN_KEY_ID", "primary"),
		RefreshTokenSalt:      getEnv("REFRESH_TOKEN_SALT", "default-salt-change-me"),
		AccessTokenTTLMinutes: getEnvInt("ACCESS_TOKEN_TTL_MINUTES", constants.DefaultAccessTokenTTLMinutes),
		RefreshTokenTTLDays:   getEnvInt("REFRESH_TOKEN_TTL_DAYS", constants.DefaultRefreshTokenTTLDays),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
