package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
	"github.com/vladimiradmaev/sugar-guidance/internal/utils"
)

// SummaryReadings is how many recent readings are sent for a summary
const SummaryReadings = 14

const summaryPrompt = `You are a supportive diabetes self-care assistant. Below is a log of blood sugar readings in mg/dL,
oldest first, each with its date, time, reading type and a coarse band (Low/Normal/Borderline/High).

REQUIREMENTS:
- Write at most 5 short sentences in plain English
- Describe the overall pattern and any reading type that stands out
- Mention readings below 70 or above 180 explicitly
- Do not give medication or insulin dosing advice
- Do not add a greeting or a sign-off

READINGS:
`

// contentGenerator is the part of *genai.GenerativeModel the summary needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// AIService writes narrative summaries of the reading log with Gemini
type AIService struct {
	client *genai.Client
	model  contentGenerator
	logger *slog.Logger
}

func NewAIService(ctx context.Context, apiKey, modelName string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "gemini")
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)

	return &AIService{
		client: client,
		model:  model,
		logger: logger.Component("ai_service"),
	}, nil
}

func (s *AIService) Summarize(ctx context.Context, readings []domain.Reading) (string, error) {
	if len(readings) == 0 {
		return InsightNoHistory, nil
	}

	prompt := buildSummaryPrompt(readings)
	s.logger.Debug("Requesting summary", "readings", len(readings))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "gemini")
	}

	text, err := responseText(resp)
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "gemini")
	}
	return text, nil
}

// Close releases the Gemini client
func (s *AIService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func buildSummaryPrompt(readings []domain.Reading) string {
	var b strings.Builder
	b.WriteString(summaryPrompt)
	for _, r := range readings {
		fmt.Fprintf(&b, "%s | %s | %d | %s\n",
			utils.FormatTimestamp(r.Timestamp), r.Context.Label(), r.Value, glucose.SeverityFor(r.Value).Label)
	}
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("response has no text")
	}
	return out, nil
}

var _ domain.SummaryService = (*AIService)(nil)
