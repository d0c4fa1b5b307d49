package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/sugar-guidance/internal/bootstrap"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/handlers"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/state"
	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using the environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("Invalid bot configuration", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()

	logger.Info("Starting Sugar Guidance Bot...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}
	defer app.Close()

	var stateManager state.StateManager = state.NewManager()
	if cfg.Redis.Enabled {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
		logger.Info("Using Redis for conversation state", "host", cfg.Redis.Host)
	}

	deps := handlers.Dependencies{
		Readings: app.Readings,
		Insights: app.Insights,
		Trends:   app.Trends,
		History:  app.History,
		Summary:  app.SummaryService(),
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager, cfg.AllowedChatID)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("Bot stopped with error", "error", err)
	}
	logger.Info("Bot stopped")
}
