package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			logger.Debug().Err(err).Msg(".env not loaded, using process environment")
		}
	}

	baseURL := getEnv("STOREFRONT_URL", "http://localhost:8080")
	sessionID := getEnv("SESSION_ID", "default")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := NewStorefrontClient(baseURL, sessionID)
	term := NewTerminal(client, os.Stdout, logger)

	logger.Info().Str("url", baseURL).Str("session_id", sessionID).Msg("🚀 connected to storefront")
	if _, err := term.Execute(ctx, "show"); err != nil {
		logger.Error().Err(err).Msg("failed to load screen")
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		quit, err := term.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
		}
		if quit || ctx.Err() != nil {
			return
		}
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("failed to read input")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
