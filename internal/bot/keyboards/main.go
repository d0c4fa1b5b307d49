package keyboards

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// Callback data
const (
	CallbackLogReading = "log_reading"
	CallbackHistory    = "history"
	CallbackTrend      = "trend"
	CallbackInsight    = "insight"
	CallbackSummary    = "summary"
	CallbackMainMenu   = "main_menu"

	// PrefixLogContext, PrefixTrend and PrefixInsight are followed by a context key.
	// TrendAll selects the unfiltered trend.
	PrefixLogContext = "log:"
	PrefixTrend      = "trend:"
	PrefixInsight    = "insight:"
	TrendAll         = "all"
)

// MainMenu creates the main menu keyboard
func MainMenu(withSummary bool) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Log reading", CallbackLogReading),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📁 Recent history", CallbackHistory),
			tgbotapi.NewInlineKeyboardButtonData("📊 Sugar trend", CallbackTrend),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Trend insight", CallbackInsight),
		),
	)

	if withSummary {
		keyboard.InlineKeyboard[2] = append(keyboard.InlineKeyboard[2],
			tgbotapi.NewInlineKeyboardButtonData("🧠 Summary", CallbackSummary))
	}

	return keyboard
}

// ContextPicker lists the reading contexts, each button carrying prefix + context key
func ContextPicker(prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range domain.AllContexts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Label(), prefix+string(c)),
		))
	}
	rows = append(rows, BackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TrendFilter offers All plus every reading context
func TrendFilter() tgbotapi.InlineKeyboardMarkup {
	keyboard := ContextPicker(PrefixTrend)
	all := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("All", PrefixTrend+TrendAll))
	keyboard.InlineKeyboard = append([][]tgbotapi.InlineKeyboardButton{all}, keyboard.InlineKeyboard...)
	return keyboard
}

// BackToMenu is a single "main menu" button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(BackRow())
}

func BackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
	)
}

// SplitCallback separates a prefixed callback into its prefix and argument
func SplitCallback(data string) (prefix, arg string) {
	i := strings.Index(data, ":")
	if i < 0 {
		return data, ""
	}
	return data[:i+1], data[i+1:]
}
