package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/csvchat/csvchat-go/internal/adapters/http"
	"github.com/csvchat/csvchat-go/internal/adapters/llm/gemini"
	"github.com/csvchat/csvchat-go/internal/adapters/llm/openrouter"
	"github.com/csvchat/csvchat-go/internal/adapters/sessions"
	"github.com/csvchat/csvchat-go/internal/app"
	"github.com/csvchat/csvchat-go/internal/config"
	"github.com/csvchat/csvchat-go/internal/env"
	"github.com/csvchat/csvchat-go/internal/ports"
	"github.com/csvchat/csvchat-go/internal/render"
)

func main() {
	if err := env.Load(".env"); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	var generator ports.Generator
	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		generator = openrouter.NewClient(httpClient, cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.LLMModel, logger)
	default:
		generator = gemini.NewClient(httpClient, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.LLMModel, logger)
	}

	store := sessions.NewMemoryStore(cfg.SessionTTL)
	svc := app.NewAskService(generator, render.New(logger), logger, cfg.LLMModel)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, store, cfg.MaxUploadBytes)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", cfg.HTTPAddr,
			"provider", cfg.LLMProvider,
			"model", cfg.LLMModel,
		)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
