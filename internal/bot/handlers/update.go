package handlers

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/menus"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/state"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	allowedChatID   int64
	logger          *slog.Logger
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler. With allowedChatID set, updates
// from every other chat are dropped.
func NewUpdateHandler(
	api menus.Sender,
	deps Dependencies,
	stateManager state.StateManager,
	allowedChatID int64,
) *UpdateHandler {
	log := logger.Component("bot")
	a := newActions(api, deps, stateManager, log)
	return &UpdateHandler{
		allowedChatID:   allowedChatID,
		logger:          log,
		callbackHandler: NewCallbackHandler(a, log),
		commandHandler:  NewCommandHandler(a, log),
		textHandler:     NewTextHandler(a, log),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	chatID, ok := chatOf(update)
	if !ok {
		return nil
	}
	if h.allowedChatID != 0 && chatID != h.allowedChatID {
		h.logger.Warn("Ignoring update from unknown chat", "chat_id", chatID)
		return nil
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	if update.Message != nil {
		if update.Message.IsCommand() {
			return h.commandHandler.Handle(ctx, update.Message)
		}

		if update.Message.Text != "" {
			return h.textHandler.Handle(ctx, update.Message)
		}
	}

	return nil
}

func chatOf(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	default:
		return 0, false
	}
}
