// Package config provides configuration management for the spendshift application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and collective
// error reporting: instead of failing on the first bad variable it collects every
// problem and reports them all at once, which makes misconfigured deployments
// much quicker to fix.
//
// The loaded AppConfig is an explicit value passed to each component at startup.
// There is no cached global; anything that needs configuration receives it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// JWTSecret is the symmetric key used to sign and verify bearer tokens.
	JWTSecret string
	// AccessTokenDuration is how long an issued token stays valid.
	AccessTokenDuration time.Duration
}

// ServerConfig holds HTTP server-related configuration.
type ServerConfig struct {
	Port string
	// CORSOrigins lists the origins allowed by the CORS middleware. Defaults
	// to the local frontend dev server when unset.
	CORSOrigins []string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// collected errors when it is absent.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional integer environment variable. The
// default is used when the variable is unset; a parse failure is recorded as a
// configuration error.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional duration environment variable.
// time.ParseDuration accepts strings like "30m" or "1h30m".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// parsePoolSize validates and clamps the connection pool size between 5 and 100.
func parsePoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		size = 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		size = 100
	}
	return size
}

// parseOrigins splits a comma-separated origin list, trimming whitespace.
func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading and
// returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration.
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := parsePoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration. The token lifetime defaults to 30 minutes.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	accessTokenDuration := getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 30*time.Minute, &errors)

	authConfig := &AuthConfig{
		JWTSecret:           jwtSecret,
		AccessTokenDuration: accessTokenDuration,
	}

	// Server configuration. The port is kept as a string because it is used
	// directly when building the listen address (":8080").
	serverConfig := &ServerConfig{
		Port:        getOptionalEnv("PORT", "8080"),
		CORSOrigins: parseOrigins(getOptionalEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}
