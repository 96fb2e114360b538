package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// NewRouter monta o router gin com middleware de tracing e as rotas do serviço
func NewRouter(cfg Config, useCase StorefrontUseCaseInterface, tracer trace.Tracer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))

	handler := NewStorefrontHandler(useCase, tracer, cfg.DefaultSessionID)
	handler.RegisterRoutes(r)

	return r
}

// NewApp monta as dependências do serviço
func NewApp(cfg Config, meter metric.Meter, tracer trace.Tracer, logger zerolog.Logger) (*gin.Engine, error) {
	repository := NewSessionRepository()
	useCase, err := NewStorefrontUseCase(repository, meter, logger)
	if err != nil {
		return nil, err
	}
	return NewRouter(cfg, useCase, tracer), nil
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront-service").Logger()

	cfg := LoadConfig(logger)
	logger = logger.Level(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("error shutting down tracer")
		}
	}()

	mp, err := initMetrics(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("error shutting down meter")
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	router, err := NewApp(cfg, mp.Meter(cfg.ServiceName), tp.Tracer(cfg.ServiceName), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("error shutting down server")
		}
	}()

	logger.Info().Str("port", cfg.Port).Msg("🚀 Storefront Service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
