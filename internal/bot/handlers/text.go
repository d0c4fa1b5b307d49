package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/keyboards"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/menus"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/state"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
)

const (
	msgNotANumber  = "Please enter the blood sugar as a whole number in mg/dL (for example: 110)."
	msgUseMenu     = "Please use the menu to choose an action."
	msgPickContext = "Please choose the reading type first."
)

// TextHandler handles text messages
type TextHandler struct {
	*actions
	logger *slog.Logger
}

// NewTextHandler creates a new text handler
func NewTextHandler(a *actions, log *slog.Logger) *TextHandler {
	return &TextHandler{actions: a, logger: log}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	switch h.stateManager.GetUserState(message.Chat.ID) {
	case state.WaitingForValue:
		return h.handleValue(ctx, message)
	default:
		return menus.SendMarkdown(h.api, message.Chat.ID, msgUseMenu, keyboards.MainMenu(h.deps.Summary != nil))
	}
}

// handleValue submits the typed value with the context picked before
func (h *TextHandler) handleValue(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	raw, ok := h.stateManager.GetTempData(chatID, state.TempReadingContext)
	readingCtx := domain.ReadingContext(raw)
	if !ok || !readingCtx.Valid() {
		if err := menus.SendMarkdown(h.api, chatID, msgPickContext, nil); err != nil {
			return err
		}
		return h.chooseContext(chatID)
	}

	value, err := strconv.Atoi(strings.TrimSpace(message.Text))
	if err != nil {
		return menus.SendMarkdown(h.api, chatID, msgNotANumber, keyboards.BackToMenu())
	}

	assessment, err := h.deps.Readings.Submit(ctx, value, readingCtx)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			// stay in the same state so the user can retype the value
			return menus.SendMarkdown(h.api, chatID, apperrors.UserMessage(err), keyboards.BackToMenu())
		}
		h.stateManager.SetUserState(chatID, state.None)
		h.stateManager.ClearTempData(chatID)
		return h.failure(ctx, chatID, err)
	}

	h.stateManager.SetUserState(chatID, state.None)
	h.stateManager.ClearTempData(chatID)

	var insight string
	if !assessment.IsEmergency() {
		insight, err = h.deps.Insights.Insight(ctx, readingCtx)
		if err != nil {
			h.errHandler.Handle(ctx, err)
		}
	}

	return menus.SendMarkdown(h.api, chatID, menus.FormatAssessment(assessment, insight), keyboards.MainMenu(h.deps.Summary != nil))
}
