// Package keyword implements the keyword extraction backends.
package keyword

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/yanqian/text-insights/internal/domain/insights"
)

// Embedder turns texts into vectors, one per input and in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// KeyBERT ranks candidate phrases by the cosine similarity of their embedding
// to the embedding of the whole document.
type KeyBERT struct {
	embedder Embedder
	logger   *slog.Logger
}

// NewKeyBERT builds the extractor.
func NewKeyBERT(embedder Embedder, logger *slog.Logger) *KeyBERT {
	return &KeyBERT{embedder: embedder, logger: logger.With("component", "keyword.keybert")}
}

// ExtractKeywords embeds the document and its candidates in one request.
// A text without candidates yields an empty, non-nil result.
func (k *KeyBERT) ExtractKeywords(ctx context.Context, req insights.KeywordRequest) ([]insights.Keyword, error) {
	candidates := Candidates(req.Text, req.Ngram, req.StopWords)
	if len(candidates) == 0 || req.TopN <= 0 {
		k.logger.Debug("no keyword candidates")
		return []insights.Keyword{}, nil
	}

	inputs := make([]string, 0, len(candidates)+1)
	inputs = append(inputs, req.Text)
	inputs = append(inputs, candidates...)
	vectors, err := k.embedder.Embed(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("embed candidates: %w", err)
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vectors), len(inputs))
	}

	doc := vectors[0]
	scored := make([]insights.Keyword, len(candidates))
	for i, phrase := range candidates {
		sim, err := cosineSimilarity(doc, vectors[i+1])
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", phrase, err)
		}
		scored[i] = insights.Keyword{Phrase: phrase, Score: sim}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > req.TopN {
		scored = scored[:req.TopN]
	}
	for i := range scored {
		scored[i].Score = round4(scored[i].Score)
	}
	k.logger.Debug("keywords ranked", "candidates", len(candidates), "returned", len(scored))
	return scored, nil
}

var _ insights.KeywordModel = (*KeyBERT)(nil)
