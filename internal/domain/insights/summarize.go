package insights

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

// SummaryInvoker calls the summarization model with the run's length bounds.
type SummaryInvoker struct {
	models SummaryModelProvider
	logger *slog.Logger
}

// NewSummaryInvoker builds the invoker around a lazily loaded model.
func NewSummaryInvoker(models SummaryModelProvider, logger *slog.Logger) *SummaryInvoker {
	return &SummaryInvoker{models: models, logger: logger.With("component", "insights.summarize")}
}

// Invoke returns exactly one summary or fails without a partial result.
func (s *SummaryInvoker) Invoke(ctx context.Context, text string, cfg RunConfig) (string, error) {
	model, err := s.models.Get(ctx)
	if err != nil {
		s.logger.Error("summarization model unavailable", "error", err)
		return "", apperrors.WrapStage(StageSummarize, CodeModelUnavailable, "summarization model unavailable", err)
	}

	summary, err := model.Summarize(ctx, SummaryRequest{
		Text:          text,
		MinLength:     cfg.MinLength,
		MaxLength:     cfg.MaxLength,
		Deterministic: true,
	})
	if err != nil {
		if errors.Is(err, ErrModelUnavailable) {
			s.logger.Error("summarization model unavailable", "error", err)
			return "", apperrors.WrapStage(StageSummarize, CodeModelUnavailable, "summarization model unavailable", err)
		}
		s.logger.Error("summarization failed", "error", err)
		return "", apperrors.WrapStage(StageSummarize, CodeSummarizationFailed, "summarization failed", err)
	}
	if strings.TrimSpace(summary) == "" {
		s.logger.Error("summarization returned empty text")
		return "", apperrors.WrapStage(StageSummarize, CodeSummarizationFailed, "summarization failed", errors.New("model returned an empty summary"))
	}
	return summary, nil
}
