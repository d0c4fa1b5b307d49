package handlers

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/keyboards"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/menus"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*actions
	logger *slog.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(a *actions, log *slog.Logger) *CallbackHandler {
	return &CallbackHandler{actions: a, logger: log}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first to stop the button spinner
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.CallbackMainMenu:
		return h.mainMenu(chatID)
	case keyboards.CallbackLogReading:
		return h.chooseContext(chatID)
	case keyboards.CallbackHistory:
		return h.history(ctx, chatID)
	case keyboards.CallbackTrend:
		return h.chooseTrend(chatID)
	case keyboards.CallbackInsight:
		return h.chooseInsight(chatID)
	case keyboards.CallbackSummary:
		return h.summary(ctx, chatID)
	}

	prefix, arg := keyboards.SplitCallback(query.Data)
	if prefix == keyboards.PrefixTrend && arg == keyboards.TrendAll {
		return h.trend(ctx, chatID, nil)
	}

	readingCtx := domain.ReadingContext(arg)
	if !readingCtx.Valid() {
		return h.handleUnknownCallback(chatID, query.Data)
	}

	switch prefix {
	case keyboards.PrefixLogContext:
		return h.startValueEntry(chatID, readingCtx)
	case keyboards.PrefixTrend:
		return h.trend(ctx, chatID, &readingCtx)
	case keyboards.PrefixInsight:
		return h.insight(ctx, chatID, readingCtx)
	default:
		return h.handleUnknownCallback(chatID, query.Data)
	}
}

func (h *CallbackHandler) handleUnknownCallback(chatID int64, data string) error {
	h.logger.Warn("Unknown callback", "data", data)
	return menus.SendMarkdown(h.api, chatID, "This button is no longer available.", keyboards.BackToMenu())
}
