package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanqian/text-insights/internal/domain/insights"
	"github.com/yanqian/text-insights/internal/infra/llm/chatgpt"
)

const openAISystemPrompt = "You are an expert writing assistant. Write an abstractive summary of the user's text. " +
	"Respond with the summary only, as plain prose without headings or lists."

type completionClient interface {
	Complete(ctx context.Context, req chatgpt.CompletionRequest) (string, error)
}

// OpenAISummarizer asks a chat model for the summary.
type OpenAISummarizer struct {
	client completionClient
	model  string
	logger *slog.Logger
}

// NewOpenAISummarizer builds the adapter.
func NewOpenAISummarizer(client completionClient, model string, logger *slog.Logger) *OpenAISummarizer {
	return &OpenAISummarizer{client: client, model: model, logger: logger.With("component", "summarizer.openai")}
}

// Summarize caps output at MaxLength tokens; the lower bound is stated in the prompt.
func (s *OpenAISummarizer) Summarize(ctx context.Context, req insights.SummaryRequest) (string, error) {
	var temperature float64
	if !req.Deterministic {
		temperature = 0.7
	}
	content, err := s.client.Complete(ctx, chatgpt.CompletionRequest{
		Model:       s.model,
		System:      openAISystemPrompt,
		User:        buildUserPrompt(req),
		Temperature: temperature,
		MaxTokens:   req.MaxLength,
	})
	if err != nil {
		if chatgpt.IsUnavailable(err) {
			return "", fmt.Errorf("%w: %s: %v", insights.ErrModelUnavailable, s.model, err)
		}
		return "", err
	}
	s.logger.Debug("summary received", "model", s.model, "chars", len(content))
	return content, nil
}

func buildUserPrompt(req insights.SummaryRequest) string {
	return fmt.Sprintf("Text:\n%s\n\nConstraints:\n- The summary must be between %d and %d tokens long.", req.Text, req.MinLength, req.MaxLength)
}

var _ insights.SummaryModel = (*OpenAISummarizer)(nil)
