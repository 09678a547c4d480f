package bookstore

import (
	"encoding/base64"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kmarval/bookstore-inventory/core"
)

type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvConfigLoader loads the configuration from environment variables.
// The SECRET environment variable is expected to be a base64-encoded string.
// It is decoded into a byte slice and used as the key for signing bearer
// tokens. The ALLOWED_ORIGINS environment variable is expected to be a
// comma-separated list of origins that are allowed to connect to the server.
type EnvConfigLoader struct {
}

func (l *EnvConfigLoader) Load() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	port, _ := strconv.Atoi(getEnv("PORT"))

	secret, err := base64.StdEncoding.DecodeString(getEnv("SECRET"))
	if err != nil {
		return nil, errors.New("invalid secret value")
	}

	ttl := core.DefaultTokenTTL
	if v := getEnv("TOKEN_TTL"); v != "" {
		ttl, err = time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("invalid token ttl value")
		}
	}

	allowedOrigins := strings.Split(getEnv("ALLOWED_ORIGINS"), ",")

	config := &Config{
		Port:           port,
		Hostname:       getEnv("HOSTNAME"),
		AllowedOrigins: allowedOrigins,
	}
	config.Auth.Secret = secret
	config.Auth.TokenTTL = ttl
	config.TLS.Crt = getEnv("TLS_CRT")
	config.TLS.Key = getEnv("TLS_KEY")
	config.SQLite.File = getEnv("SQLITE_FILE")
	config.SQLite.Migrations = getEnv("MIGRATION_DIR")
	config.Admin.Username = getEnv("ADMIN_USERNAME")
	config.Admin.Password = getEnv("ADMIN_PASSWORD")
	return config, nil
}

func getEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}
