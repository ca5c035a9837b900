package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yanqian/text-insights/internal/domain/insights"
	"github.com/yanqian/text-insights/internal/infra/llm/huggingface"
)

// DefaultHuggingFaceModel is the pretrained summarization checkpoint used by the demo.
const DefaultHuggingFaceModel = "facebook/bart-large-cnn"

type inferenceClient interface {
	Summarize(ctx context.Context, model string, req huggingface.SummarizationRequest) ([]huggingface.SummarizationResult, error)
}

// HuggingFaceSummarizer runs a sequence-to-sequence model on the inference API.
type HuggingFaceSummarizer struct {
	client inferenceClient
	model  string
	logger *slog.Logger
}

// NewHuggingFaceSummarizer builds the adapter.
func NewHuggingFaceSummarizer(client inferenceClient, model string, logger *slog.Logger) *HuggingFaceSummarizer {
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	return &HuggingFaceSummarizer{client: client, model: model, logger: logger.With("component", "summarizer.huggingface")}
}

// Summarize requests greedy decoding bounded by the run's token limits.
func (s *HuggingFaceSummarizer) Summarize(ctx context.Context, req insights.SummaryRequest) (string, error) {
	results, err := s.client.Summarize(ctx, s.model, huggingface.SummarizationRequest{
		Inputs: req.Text,
		Parameters: huggingface.SummarizationParameters{
			MinLength: req.MinLength,
			MaxLength: req.MaxLength,
			DoSample:  !req.Deterministic,
		},
		Options: huggingface.Options{WaitForModel: true},
	})
	if err != nil {
		if huggingface.IsUnavailable(err) {
			return "", fmt.Errorf("%w: %s: %v", insights.ErrModelUnavailable, s.model, err)
		}
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("summarization returned no results")
	}
	s.logger.Debug("summary received", "model", s.model, "chars", len(results[0].SummaryText))
	return results[0].SummaryText, nil
}

var _ insights.SummaryModel = (*HuggingFaceSummarizer)(nil)
