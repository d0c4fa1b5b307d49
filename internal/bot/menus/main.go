package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/sugar-guidance/internal/bot/keyboards"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
	"github.com/vladimiradmaev/sugar-guidance/internal/services"
)

// Disclaimer is appended to every result
const Disclaimer = "💡 *Disclaimer:* This app provides general guidance only and does not replace professional medical advice. Always consult with a healthcare provider."

const (
	MsgNoHistory = "No history available yet. Submit your first reading to get started!"

	// trend bars are one block per barStep mg/dL
	barStep    = 25
	maxBarSize = 16
)

// Sender is the part of *tgbotapi.BotAPI the bot uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64, withSummary bool) error {
	text := `🩺 *Daily Sugar Guidance*

Track, analyze and manage your blood sugar levels.

📝 Log a reading with its type and get guidance for it
📁 See your last 10 readings
📊 Follow the trend of your last 7 readings

Choose an action:`

	return SendMarkdown(api, chatID, text, keyboards.MainMenu(withSummary))
}

// SendMarkdown sends a Markdown message, falling back to plain text when Telegram rejects the markup
func SendMarkdown(api Sender, chatID int64, text string, keyboard interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	if _, err := api.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, err := api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FormatAssessment renders the result of a submission
func FormatAssessment(a *domain.Assessment, insight string) string {
	var b strings.Builder

	if a.IsEmergency() {
		b.WriteString("🚨 *EMERGENCY*\n\n")
		fmt.Fprintf(&b, "🩸 *Blood Sugar:* %d mg/dL (%s)\n\n", a.Reading.Value, a.Reading.Context.Label())
		if a.Result != nil {
			fmt.Fprintf(&b, "%s *Status:* %s\n\n", a.Result.Indicator, a.Result.Status.Display())
		}
		fmt.Fprintf(&b, "⚠️ %s\n\n", a.Advisory)
		b.WriteString(Disclaimer)
		return b.String()
	}

	r := a.Result
	b.WriteString("📊 *Today's Results*\n\n")
	fmt.Fprintf(&b, "🩺 *Status:* %s %s\n", r.Indicator, r.Status.Display())
	fmt.Fprintf(&b, "📈 *Blood Sugar:* %d mg/dL\n", a.Reading.Value)
	fmt.Fprintf(&b, "🕐 *Reading Type:* %s\n\n", a.Reading.Context.Label())

	fmt.Fprintf(&b, "*What This Means*\n%s\n\n", r.Meaning)

	b.WriteString("🍽️ *Diet Recommendations*\n")
	for _, item := range r.DietDo {
		fmt.Fprintf(&b, "✔️ %s\n", item)
	}
	for _, item := range r.DietAvoid {
		fmt.Fprintf(&b, "❌ %s\n", item)
	}

	fmt.Fprintf(&b, "\n🏃 *Physical Activity*\n%s\n\n", r.Activity)
	fmt.Fprintf(&b, "🎯 *Today's Focus*\n%s\n\n", r.Focus)

	if insight != "" {
		fmt.Fprintf(&b, "📈 *Trend Insight*\n%s\n\n", insight)
	}

	b.WriteString(Disclaimer)
	return b.String()
}

// FormatHistory renders the recent history as a fixed-width table
func FormatHistory(rows []domain.HistoryRow) string {
	if len(rows) == 0 {
		return MsgNoHistory
	}

	var b strings.Builder
	b.WriteString("📁 *Recent History*\n\n```\n")
	fmt.Fprintf(&b, "%-16s  %-23s  %5s  %s\n", "Date/Time", "Reading Type", "mg/dL", "Status")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-16s  %-23s  %5d  %s %s\n",
			row.Reading.Timestamp.Format("2006-01-02 15:04"),
			row.Reading.Context.Label(),
			row.Reading.Value,
			colorDot(row.Severity.Color),
			row.Severity.Label)
	}
	b.WriteString("```")
	return b.String()
}

// FormatTrend renders the trend as one text bar per reading
func FormatTrend(trend domain.Trend) string {
	title := "All readings"
	if trend.Filter != nil {
		title = trend.Filter.Label()
	}

	if trend.Insufficient {
		return fmt.Sprintf("📊 *Sugar Trend: %s*\n\n%s", title, services.MsgInsufficientTrend)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Sugar Trend: %s*\n\n", title)
	for _, p := range trend.Points {
		fmt.Fprintf(&b, "`%s` %s %d\n",
			p.Reading.Timestamp.Format("01-02 15:04"),
			strings.Repeat(colorBlock(p.Severity.Color), barSize(p.Reading.Value)),
			p.Reading.Value)
	}
	fmt.Fprintf(&b, "\n🟩 %d–%d  🟧 %d–%d  🟥 below %d or above %d mg/dL",
		glucose.SeverityLowBelow, glucose.SeverityNormalMax,
		glucose.SeverityNormalMax+1, glucose.SeverityBorderlineMax,
		glucose.SeverityLowBelow, glucose.SeverityBorderlineMax)
	return b.String()
}

// FormatSummary wraps a generated summary. The text comes from the model and is escaped.
func FormatSummary(summary string) string {
	return fmt.Sprintf("🧠 *Summary of recent readings*\n\n%s\n\n%s", escape(summary), Disclaimer)
}

func barSize(value int) int {
	n := (value + barStep - 1) / barStep
	if n < 1 {
		return 1
	}
	if n > maxBarSize {
		return maxBarSize
	}
	return n
}

func colorBlock(color string) string {
	switch color {
	case glucose.ColorGreen:
		return "🟩"
	case glucose.ColorOrange:
		return "🟧"
	default:
		return "🟥"
	}
}

func colorDot(color string) string {
	switch color {
	case glucose.ColorGreen:
		return "🟢"
	case glucose.ColorOrange:
		return "🟡"
	default:
		return "🔴"
	}
}
