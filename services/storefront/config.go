package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config agrega as configurações do serviço lidas do ambiente
type Config struct {
	Port             string
	ServiceName      string
	OTLPEndpoint     string
	LogLevel         zerolog.Level
	DefaultSessionID string
}

// LoadConfig lê as variáveis de ambiente. Fora de produção, um .env no
// diretório atual sobrescreve o ambiente.
func LoadConfig(logger zerolog.Logger) Config {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			logger.Debug().Err(err).Msg(".env not loaded, using process environment")
		} else {
			logger.Info().Msg("loaded environment from .env")
		}
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		ServiceName:      getEnv("SERVICE_NAME", "storefront-service"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:         level,
		DefaultSessionID: getEnv("DEFAULT_SESSION_ID", "default"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
