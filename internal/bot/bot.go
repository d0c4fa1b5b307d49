package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/handlers"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/state"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
	logger  *slog.Logger
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager, allowedChatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log := logger.Component("bot")
	log.Info("Bot authorized", "account", api.Self.UserName)
	if allowedChatID == 0 {
		log.Warn("TELEGRAM_ALLOWED_CHAT_ID is not set, the bot answers every chat")
	}

	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager, allowedChatID),
		logger:  log,
	}, nil
}

func (b *Bot) registerCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Show the main menu"},
		tgbotapi.BotCommand{Command: "log", Description: "Log a new reading"},
		tgbotapi.BotCommand{Command: "history", Description: "Show the last 10 readings"},
		tgbotapi.BotCommand{Command: "trend", Description: "Show the sugar trend"},
		tgbotapi.BotCommand{Command: "insight", Description: "Compare the last two readings"},
		tgbotapi.BotCommand{Command: "summary", Description: "Summarize recent readings"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help"},
	)
	if _, err := b.api.Request(commands); err != nil {
		b.logger.Warn("Failed to register bot commands", "error", err)
	}
}

// Start polls for updates until ctx is canceled
func (b *Bot) Start(ctx context.Context) error {
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handler.Handle(ctx, update); err != nil {
				b.logger.Error("Error handling update", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}
