package embedder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/text-insights/internal/infra/llm/huggingface"
)

func TestDeterministicEmbedderIsStable(t *testing.T) {
	e := NewDeterministicEmbedder(16)
	first, err := e.Embed(context.Background(), []string{"Quick fox", "quick fox.", "lazy dog"})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Len(t, first[0], 16)
	require.Equal(t, first[0], first[1])

	again, err := e.Embed(context.Background(), []string{"Quick fox"})
	require.NoError(t, err)
	require.Equal(t, first[0], again[0])
}

func TestHuggingFaceEmbedderBatches(t *testing.T) {
	client := &stubFeatureClient{}
	e := NewHuggingFaceEmbedder(client, "", 2, newTestLogger())

	vectors, err := e.Embed(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, [][]float32{{1}, {1}, {1}}, vectors)
	require.Equal(t, [][]string{{"a", "b"}, {"c"}}, client.batches)
	require.Equal(t, DefaultHuggingFaceModel, client.model)
}

func TestHuggingFaceEmbedderCountMismatch(t *testing.T) {
	client := &stubFeatureClient{short: true}
	e := NewHuggingFaceEmbedder(client, "m", 10, newTestLogger())
	_, err := e.Embed(context.Background(), []string{"a", "b"})
	require.EqualError(t, err, "feature extraction returned 1 vectors for 2 inputs")
}

func TestOpenAIEmbedder(t *testing.T) {
	client := &stubEmbeddingClient{}
	e := NewOpenAIEmbedder(client, " text-embedding-3-small ", newTestLogger())

	vectors, err := e.Embed(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	require.Equal(t, "text-embedding-3-small", client.model)
	require.Equal(t, 1, client.calls)

	client.err = errors.New("quota")
	_, err = e.Embed(context.Background(), []string{"three"})
	require.EqualError(t, err, "quota")
}

func TestEstimateTokens(t *testing.T) {
	require.Equal(t, 0, estimateTokens(""))
	require.Equal(t, 3, estimateTokens("abcdef"))
	require.Equal(t, 3, estimateTokens("a b c"))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubFeatureClient struct {
	model   string
	batches [][]string
	short   bool
}

func (s *stubFeatureClient) FeatureExtraction(_ context.Context, model string, req huggingface.FeatureExtractionRequest) ([][]float32, error) {
	s.model = model
	s.batches = append(s.batches, append([]string(nil), req.Inputs...))
	n := len(req.Inputs)
	if s.short {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{1}
	}
	return out, nil
}

type stubEmbeddingClient struct {
	model string
	calls int
	err   error
}

func (s *stubEmbeddingClient) Embed(_ context.Context, model string, texts []string) ([][]float32, error) {
	s.model = model
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}
