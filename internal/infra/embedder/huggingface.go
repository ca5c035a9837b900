package embedder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/text-insights/internal/infra/llm/huggingface"
)

// DefaultHuggingFaceModel is the sentence embedding model KeyBERT uses by default.
const DefaultHuggingFaceModel = "sentence-transformers/all-MiniLM-L6-v2"

type featureClient interface {
	FeatureExtraction(ctx context.Context, model string, req huggingface.FeatureExtractionRequest) ([][]float32, error)
}

// HuggingFaceEmbedder calls a feature-extraction model on the inference API.
type HuggingFaceEmbedder struct {
	client    featureClient
	model     string
	batchSize int
	logger    *slog.Logger
}

// NewHuggingFaceEmbedder constructs the embedder.
func NewHuggingFaceEmbedder(client featureClient, model string, batchSize int, logger *slog.Logger) *HuggingFaceEmbedder {
	if strings.TrimSpace(model) == "" {
		model = DefaultHuggingFaceModel
	}
	if batchSize <= 0 {
		batchSize = 64
	}
	return &HuggingFaceEmbedder{
		client:    client,
		model:     model,
		batchSize: batchSize,
		logger:    logger.With("component", "embedder.huggingface"),
	}
}

// Embed requests vectors in batches and returns them in input order.
func (e *HuggingFaceEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]
		vectors, err := e.client.FeatureExtraction(ctx, e.model, huggingface.FeatureExtractionRequest{
			Inputs:  batch,
			Options: huggingface.Options{WaitForModel: true},
		})
		if err != nil {
			return nil, fmt.Errorf("feature extraction: %w", err)
		}
		if len(vectors) != len(batch) {
			e.logger.Warn("embedding result count mismatch", "expected", len(batch), "got", len(vectors))
			return nil, fmt.Errorf("feature extraction returned %d vectors for %d inputs", len(vectors), len(batch))
		}
		out = append(out, vectors...)
	}
	return out, nil
}
