package handlers

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/menus"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

const helpText = `Available commands:
/start - Show the main menu
/log - Log a new reading
/history - Show the last 10 readings
/trend [type] - Show the sugar trend, optionally for one reading type
/insight [type] - Compare the last two readings of a type
/summary - Summarize recent readings
/cancel - Cancel the current entry
/help - Show this message

Reading types: fasting, post_breakfast, post_lunch, post_dinner, random`

// CommandHandler handles bot commands
type CommandHandler struct {
	*actions
	logger *slog.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(a *actions, log *slog.Logger) *CommandHandler {
	return &CommandHandler{actions: a, logger: log}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	h.logger.Info("Handling command", "command", message.Command(), "chat_id", chatID)

	switch message.Command() {
	case "start", "cancel":
		return h.mainMenu(chatID)
	case "help":
		return menus.SendMarkdown(h.api, chatID, helpText, nil)
	case "log":
		return h.chooseContext(chatID)
	case "history":
		return h.history(ctx, chatID)
	case "trend":
		args := strings.TrimSpace(message.CommandArguments())
		if args == "" {
			return h.chooseTrend(chatID)
		}
		readingCtx, ok := h.parseContextArg(chatID, args)
		if !ok {
			return nil
		}
		return h.trend(ctx, chatID, &readingCtx)
	case "insight":
		args := strings.TrimSpace(message.CommandArguments())
		if args == "" {
			return h.chooseInsight(chatID)
		}
		readingCtx, ok := h.parseContextArg(chatID, args)
		if !ok {
			return nil
		}
		return h.insight(ctx, chatID, readingCtx)
	case "summary":
		return h.summary(ctx, chatID)
	default:
		return h.handleUnknownCommand(chatID)
	}
}

// parseContextArg replies with the help text when the argument is not a reading type
func (h *CommandHandler) parseContextArg(chatID int64, arg string) (domain.ReadingContext, bool) {
	readingCtx, err := domain.ParseReadingContext(arg)
	if err != nil {
		if sendErr := menus.SendMarkdown(h.api, chatID, "Unknown reading type.\n\n"+helpText, nil); sendErr != nil {
			h.logger.Error("Failed to send message", "error", sendErr)
		}
		return "", false
	}
	return readingCtx, true
}

func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	return menus.SendMarkdown(h.api, chatID, "Unknown command. Use /help to see the available commands.", nil)
}
