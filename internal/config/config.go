package config

import (
	"os"
)

type Config struct {
	Port            string
	Environment     string
	AWSRegion       string
	DynamoEndpoint  string // non-empty points the SDK at DynamoDB Local
	TablePrefix     string
	IdentityURL     string
	IdentityJWKSURL string // Constructed from IdentityURL + /auth/v1/.well-known/jwks.json
	// IdentityServiceKey authenticates outbound calls to the identity
	// provider's admin API (directory profile lookups).
	IdentityServiceKey string
	// ServiceKey guards inbound /internal routes from sibling services.
	ServiceKey  string
	CORSOrigins string
	LogDir      string // non-empty also writes JSON logs to timestamped files
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)
	identityURL := getEnv("IDENTITY_URL", "")

	// Construct JWKS URL from the identity provider URL
	jwksURL := identityURL + "/auth/v1/.well-known/jwks.json"

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        env,
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		DynamoEndpoint:     getEnv("DYNAMO_ENDPOINT", ""),
		TablePrefix:        tablePrefix,
		IdentityURL:        identityURL,
		IdentityJWKSURL:    jwksURL,
		IdentityServiceKey: getEnv("IDENTITY_SERVICE_KEY", ""),
		ServiceKey:         getEnv("SERVICE_KEY", ""),
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:             getEnv("LOG_DIR", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	case "dev":
		return "dev_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
