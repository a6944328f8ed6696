package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string

	// Identity
	JWTSecret string

	// External collaborators
	GeneratorURL    string
	GeneratorAPIKey string
	DeployerURL     string

	// Credits granted to an owner the first time they are seen.
	DefaultAllowance int
}

// Load reads configuration from environment variables with sensible
// defaults for local development. DATABASE_URL and JWT_SECRET have no
// default and are checked by the caller.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GeneratorURL:     getEnv("GENERATOR_URL", "http://localhost:9090"),
		GeneratorAPIKey:  os.Getenv("GENERATOR_API_KEY"),
		DeployerURL:      getEnv("DEPLOYER_URL", "http://localhost:9091"),
		DefaultAllowance: getEnvInt("DEFAULT_ALLOWANCE", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
