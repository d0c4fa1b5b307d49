package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/keyboards"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/menus"
	"github.com/vladimiradmaev/sugar-guidance/internal/bot/state"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/services"
)

const (
	msgChooseContext = "🕐 *Which reading is this?*\n\nChoose the reading type:"
	msgEnterValue    = "🩸 *%s*\n\nEnter your blood sugar in mg/dL (for example: 110):"
	msgChooseTrend   = "📊 *Sugar Trend*\n\nFilter by type:"
	msgChooseInsight = "📈 *Trend Insight*\n\nCompare the last two readings of which type?"
	msgNoSummary     = "Summaries are not available: no Gemini API key is configured."
	msgSummarizing   = "🧠 Summarizing your recent readings..."
)

// actions are the responses shared by commands and buttons
type actions struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
	errHandler   *apperrors.Handler
}

func newActions(api menus.Sender, deps Dependencies, stateManager state.StateManager, log *slog.Logger) *actions {
	return &actions{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		errHandler:   apperrors.NewHandler(log),
	}
}

func (a *actions) mainMenu(chatID int64) error {
	a.stateManager.SetUserState(chatID, state.None)
	a.stateManager.ClearTempData(chatID)
	return menus.SendMainMenu(a.api, chatID, a.deps.Summary != nil)
}

func (a *actions) chooseContext(chatID int64) error {
	a.stateManager.SetUserState(chatID, state.None)
	a.stateManager.ClearTempData(chatID)
	return menus.SendMarkdown(a.api, chatID, msgChooseContext, keyboards.ContextPicker(keyboards.PrefixLogContext))
}

func (a *actions) startValueEntry(chatID int64, readingCtx domain.ReadingContext) error {
	a.stateManager.SetTempData(chatID, state.TempReadingContext, string(readingCtx))
	a.stateManager.SetUserState(chatID, state.WaitingForValue)
	return menus.SendMarkdown(a.api, chatID, fmt.Sprintf(msgEnterValue, readingCtx.Label()), keyboards.BackToMenu())
}

func (a *actions) history(ctx context.Context, chatID int64) error {
	rows, err := a.deps.History.Recent(ctx, services.RecentHistoryRows)
	if err != nil {
		return a.failure(ctx, chatID, err)
	}
	return menus.SendMarkdown(a.api, chatID, menus.FormatHistory(rows), keyboards.MainMenu(a.deps.Summary != nil))
}

func (a *actions) chooseTrend(chatID int64) error {
	return menus.SendMarkdown(a.api, chatID, msgChooseTrend, keyboards.TrendFilter())
}

func (a *actions) trend(ctx context.Context, chatID int64, filter *domain.ReadingContext) error {
	trend, err := a.deps.Trends.Trend(ctx, filter)
	if err != nil {
		return a.failure(ctx, chatID, err)
	}
	return menus.SendMarkdown(a.api, chatID, menus.FormatTrend(trend), keyboards.TrendFilter())
}

func (a *actions) chooseInsight(chatID int64) error {
	return menus.SendMarkdown(a.api, chatID, msgChooseInsight, keyboards.ContextPicker(keyboards.PrefixInsight))
}

func (a *actions) insight(ctx context.Context, chatID int64, readingCtx domain.ReadingContext) error {
	text, err := a.deps.Insights.Insight(ctx, readingCtx)
	if err != nil {
		return a.failure(ctx, chatID, err)
	}
	return menus.SendMarkdown(a.api, chatID,
		fmt.Sprintf("📈 *Trend Insight: %s*\n\n%s", readingCtx.Label(), text),
		keyboards.MainMenu(a.deps.Summary != nil))
}

func (a *actions) summary(ctx context.Context, chatID int64) error {
	if a.deps.Summary == nil {
		return menus.SendMarkdown(a.api, chatID, msgNoSummary, keyboards.BackToMenu())
	}

	if err := menus.SendMarkdown(a.api, chatID, msgSummarizing, nil); err != nil {
		return err
	}

	rows, err := a.deps.History.Recent(ctx, services.SummaryReadings)
	if err != nil {
		return a.failure(ctx, chatID, err)
	}
	readings := make([]domain.Reading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, row.Reading)
	}

	text, err := a.deps.Summary.Summarize(ctx, readings)
	if err != nil {
		return a.failure(ctx, chatID, err)
	}
	return menus.SendMarkdown(a.api, chatID, menus.FormatSummary(text), keyboards.MainMenu(true))
}

// failure logs err and tells the user what went wrong. The error is not returned
// so the update loop does not log it a second time.
func (a *actions) failure(ctx context.Context, chatID int64, err error) error {
	a.errHandler.Handle(ctx, err)
	return menus.SendMarkdown(a.api, chatID, apperrors.UserMessage(err), keyboards.BackToMenu())
}
