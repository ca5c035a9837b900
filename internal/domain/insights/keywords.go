package insights

import (
	"context"
	"log/slog"
	"sort"

	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

// KeywordExtractor ranks keyphrases from the source chosen by the run.
type KeywordExtractor struct {
	models    KeywordModelProvider
	stopWords string
	logger    *slog.Logger
}

// NewKeywordExtractor builds the extractor around a lazily loaded model.
func NewKeywordExtractor(models KeywordModelProvider, logger *slog.Logger) *KeywordExtractor {
	return &KeywordExtractor{
		models:    models,
		stopWords: EnglishStopWords,
		logger:    logger.With("component", "insights.keywords"),
	}
}

// SelectSource picks the original text or the summary.
func SelectSource(cfg RunConfig, original, summary string) string {
	if cfg.Source == SourceSummary {
		return summary
	}
	return original
}

// Extract invokes the keyword model once. An empty result is valid.
func (k *KeywordExtractor) Extract(ctx context.Context, source string, cfg RunConfig) ([]Keyword, error) {
	model, err := k.models.Get(ctx)
	if err != nil {
		k.logger.Error("keyword model unavailable", "error", err)
		return nil, apperrors.WrapStage(StageKeywords, CodeKeywordExtractionFailed, "keyword model unavailable", err)
	}

	raw, err := model.ExtractKeywords(ctx, KeywordRequest{
		Text:      source,
		Ngram:     cfg.Ngram,
		StopWords: k.stopWords,
		TopN:      cfg.NumKeywords,
	})
	if err != nil {
		k.logger.Error("keyword extraction failed", "error", err)
		return nil, apperrors.WrapStage(StageKeywords, CodeKeywordExtractionFailed, "keyword extraction failed", err)
	}
	return rankKeywords(raw, cfg.NumKeywords), nil
}

// rankKeywords orders by descending score, keeping the model's order on ties, and caps the count.
func rankKeywords(in []Keyword, limit int) []Keyword {
	out := make([]Keyword, 0, len(in))
	for _, kw := range in {
		if kw.Phrase == "" {
			continue
		}
		out = append(out, kw)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
