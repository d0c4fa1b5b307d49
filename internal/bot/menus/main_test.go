package menus

import (
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
	"github.com/vladimiradmaev/sugar-guidance/internal/services"
)

var ts = time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local)

func classify(value int, c domain.ReadingContext) *domain.ClassificationResult {
	r := glucose.NewClassifier(glucose.DefaultThresholds()).Classify(value, c)
	return &r
}

func TestFormatAssessmentNormalFlow(t *testing.T) {
	a := &domain.Assessment{
		Reading: domain.Reading{Timestamp: ts, Context: domain.ContextFasting, Value: 112},
		Result:  classify(112, domain.ContextFasting),
	}

	text := FormatAssessment(a, "Good progress. Today's sugar is lower than yesterday by 8 mg/dL.")

	assert.Contains(t, text, "🟡 BORDERLINE")
	assert.Contains(t, text, "112 mg/dL")
	assert.Contains(t, text, "Fasting (Empty Stomach)")
	assert.Contains(t, text, "✔️ Prefer light meals.")
	assert.Contains(t, text, "❌ Reduce sugar and refined carbohydrates.")
	assert.Contains(t, text, "lower than yesterday by 8 mg/dL")
	assert.True(t, strings.HasSuffix(text, Disclaimer))
}

func TestFormatAssessmentEmergency(t *testing.T) {
	high := &domain.Assessment{
		Reading:   domain.Reading{Timestamp: ts, Context: domain.ContextRandom, Value: 450},
		Emergency: domain.EmergencyExtremelyHigh,
		Advisory:  glucose.ExtremelyHighAdvice,
	}
	text := FormatAssessment(high, "ignored")
	assert.Contains(t, text, "EMERGENCY")
	assert.Contains(t, text, glucose.ExtremelyHighAdvice)
	assert.NotContains(t, text, "ignored")
	assert.NotContains(t, text, "Diet Recommendations")

	low := &domain.Assessment{
		Reading:   domain.Reading{Timestamp: ts, Context: domain.ContextRandom, Value: 30},
		Emergency: domain.EmergencyCriticalLow,
		Advisory:  glucose.CriticalLowAdvisory,
		Result:    classify(30, domain.ContextRandom),
	}
	text = FormatAssessment(low, "")
	assert.Contains(t, text, "CRITICAL LOW")
	assert.Contains(t, text, glucose.CriticalLowAdvisory)
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, MsgNoHistory, FormatHistory(nil))

	rows := []domain.HistoryRow{
		{Reading: domain.Reading{Timestamp: ts, Context: domain.ContextPostLunch, Value: 150}, Severity: glucose.SeverityFor(150)},
		{Reading: domain.Reading{Timestamp: ts.Add(time.Hour), Context: domain.ContextRandom, Value: 95}, Severity: glucose.SeverityFor(95)},
	}
	text := FormatHistory(rows)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[3], "Reading Type")
	assert.Contains(t, lines[4], "2024-05-01 08:30")
	assert.Contains(t, lines[4], "After Lunch")
	assert.Contains(t, lines[4], "🔴 High")
	assert.Contains(t, lines[5], "🟢 Normal")
}

func TestFormatTrend(t *testing.T) {
	fasting := domain.ContextFasting
	insufficient := FormatTrend(domain.Trend{Filter: &fasting, Insufficient: true})
	assert.Contains(t, insufficient, "Fasting (Empty Stomach)")
	assert.Contains(t, insufficient, services.MsgInsufficientTrend)

	trend := domain.Trend{Points: []domain.TrendPoint{
		{Reading: domain.Reading{Timestamp: ts, Value: 90}, Severity: glucose.SeverityFor(90)},
		{Reading: domain.Reading{Timestamp: ts.Add(time.Hour), Value: 120}, Severity: glucose.SeverityFor(120)},
	}}
	text := FormatTrend(trend)
	assert.Contains(t, text, "All readings")
	assert.Contains(t, text, strings.Repeat("🟩", 4)+" 90")
	assert.Contains(t, text, strings.Repeat("🟧", 5)+" 120")
}

func TestBarSize(t *testing.T) {
	assert.Equal(t, 1, barSize(1))
	assert.Equal(t, 1, barSize(25))
	assert.Equal(t, 2, barSize(26))
	assert.Equal(t, maxBarSize, barSize(600))
}

func TestFormatSummaryEscapesModelText(t *testing.T) {
	text := FormatSummary("post_lunch values *spike*")
	assert.Contains(t, text, `post\_lunch values \*spike\*`)
}

type recordingSender struct {
	sent  []tgbotapi.Chattable
	fails int
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	if s.fails > 0 {
		s.fails--
		return tgbotapi.Message{}, assert.AnError
	}
	return tgbotapi.Message{}, nil
}

func (s *recordingSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func TestSendMarkdownFallsBackToPlainText(t *testing.T) {
	sender := &recordingSender{fails: 1}

	require.NoError(t, SendMarkdown(sender, 5, "*hi*", nil))
	require.Len(t, sender.sent, 2)
	assert.Equal(t, tgbotapi.ModeMarkdown, sender.sent[0].(tgbotapi.MessageConfig).ParseMode)
	assert.Empty(t, sender.sent[1].(tgbotapi.MessageConfig).ParseMode)
}

func TestSendMainMenu(t *testing.T) {
	sender := &recordingSender{}

	require.NoError(t, SendMainMenu(sender, 5, false))
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(5), msg.ChatID)
	assert.IsType(t, tgbotapi.InlineKeyboardMarkup{}, msg.ReplyMarkup)
}
