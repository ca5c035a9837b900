package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/text-insights/internal/domain/insights"
	"github.com/yanqian/text-insights/internal/infra/config"
	"github.com/yanqian/text-insights/internal/infra/keyword"
)

func TestProvideInsightsConfigAppliesDefaults(t *testing.T) {
	cfg := &config.Config{Insights: config.InsightsConfig{
		DefaultMinLength:   40,
		DefaultMaxLength:   200,
		DefaultNumKeywords: 5,
		DefaultNgram:       "(1,3)",
		DefaultSource:      "Summary",
	}}

	got := provideInsightsConfig(cfg).Bounds
	require.Equal(t, 40, got.MinLength.Default)
	require.Equal(t, 200, got.MaxLength.Default)
	require.Equal(t, 5, got.NumKeywords.Default)
	require.Equal(t, "(1,3)", got.DefaultNgram)
	require.Equal(t, insights.SourceSummary, got.DefaultSource)
}

func TestProvideInsightsConfigKeepsBuiltinsWhenUnset(t *testing.T) {
	got := provideInsightsConfig(&config.Config{}).Bounds
	require.Equal(t, insights.DefaultOptions(), got)
}

func TestProvideKeywordModelsSelectsBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rakeCfg := &config.Config{Keywords: config.KeywordsConfig{Backend: config.KeywordRAKE}}
	model, err := provideKeywordModels(rakeCfg, nil, nil, logger).Get(context.Background())
	require.NoError(t, err)
	require.IsType(t, &keyword.RAKE{}, model)

	detCfg := &config.Config{Keywords: config.KeywordsConfig{Backend: config.KeywordKeyBERT, Embedder: config.EmbedderDeterministic, Dimensions: 32}}
	model, err = provideKeywordModels(detCfg, nil, nil, logger).Get(context.Background())
	require.NoError(t, err)
	require.IsType(t, &keyword.KeyBERT{}, model)

	hfCfg := &config.Config{Keywords: config.KeywordsConfig{Backend: config.KeywordKeyBERT, Embedder: config.EmbedderHuggingFace}}
	_, err = provideKeywordModels(hfCfg, nil, nil, logger).Get(context.Background())
	require.ErrorContains(t, err, "huggingface client is not configured")
}

func TestProvideSummaryModelsRequiresClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Summarizer: config.SummarizerConfig{Backend: config.SummarizerOpenAI}}
	_, err := provideSummaryModels(cfg, nil, nil, logger).Get(context.Background())
	require.ErrorContains(t, err, "openai client is not configured")
}

func TestPipelineWithOfflineKeywords(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Keywords: config.KeywordsConfig{Backend: config.KeywordKeyBERT, Embedder: config.EmbedderDeterministic, Dimensions: 64}}

	svc := insights.NewService(
		provideInsightsConfig(cfg),
		staticSummaries{summary: "Foxes jump over lazy dogs in the forest."},
		provideKeywordModels(cfg, nil, nil, logger),
		nil,
		logger,
	)

	res, err := svc.Generate(context.Background(), insights.Request{
		Text:        "The quick brown fox jumps over the lazy dog repeatedly in the forest.",
		NumKeywords: 3,
		NgramRange:  "(1,1)",
	})
	require.NoError(t, err)
	require.Len(t, res.Keywords, 3)
	for i := 1; i < len(res.Keywords); i++ {
		require.GreaterOrEqual(t, res.Keywords[i-1].Score, res.Keywords[i].Score)
	}
	require.Equal(t, len(res.Keywords), len(res.Chart.Labels))
}

type staticSummaries struct{ summary string }

func (s staticSummaries) Get(context.Context) (insights.SummaryModel, error) { return s, nil }

func (s staticSummaries) Summarize(context.Context, insights.SummaryRequest) (string, error) {
	return s.summary, nil
}
