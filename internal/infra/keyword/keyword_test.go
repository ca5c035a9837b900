package keyword

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	rake "github.com/afjoseph/RAKE.Go"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/text-insights/internal/domain/insights"
)

func TestCandidatesDropStopWordsBeforeNgrams(t *testing.T) {
	got := Candidates("The quick brown fox jumps over the lazy dog", insights.NgramRange{Low: 1, High: 2}, insights.EnglishStopWords)
	require.Equal(t, []string{
		"brown", "brown fox", "dog", "fox", "fox jumps", "jumps", "jumps lazy", "lazy", "lazy dog", "quick", "quick brown",
	}, got)
}

func TestCandidatesDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "only stop words", text: "the and of"},
		{name: "single letters", text: "a b c"},
		{name: "punctuation", text: "?! ..."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Empty(t, Candidates(tt.text, insights.NgramRange{Low: 1, High: 3}, insights.EnglishStopWords))
		})
	}
}

func TestCandidatesWithoutStopWordPolicy(t *testing.T) {
	got := Candidates("The Fox", insights.NgramRange{Low: 1, High: 1}, "")
	require.Equal(t, []string{"fox", "the"}, got)
}

func TestKeyBERTRanksBySimilarity(t *testing.T) {
	emb := &mapEmbedder{vectors: map[string][]float32{
		"alpha beta gamma": {1, 0},
		"alpha":            {1, 0},
		"beta":             {0, 1},
		"gamma":            {1, 1},
	}}
	k := NewKeyBERT(emb, discardLogger())

	got, err := k.ExtractKeywords(context.Background(), insights.KeywordRequest{
		Text:      "alpha beta gamma",
		Ngram:     insights.NgramRange{Low: 1, High: 1},
		StopWords: insights.EnglishStopWords,
		TopN:      2,
	})
	require.NoError(t, err)
	require.Equal(t, []insights.Keyword{{Phrase: "alpha", Score: 1}, {Phrase: "gamma", Score: 0.7071}}, got)
	require.Equal(t, 1, emb.calls)
}

func TestKeyBERTNoCandidatesIsNotAnError(t *testing.T) {
	emb := &mapEmbedder{}
	k := NewKeyBERT(emb, discardLogger())

	got, err := k.ExtractKeywords(context.Background(), insights.KeywordRequest{
		Text:      "it is so",
		Ngram:     insights.NgramRange{Low: 1, High: 2},
		StopWords: insights.EnglishStopWords,
		TopN:      5,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Zero(t, emb.calls)
}

func TestKeyBERTEmbedderFailure(t *testing.T) {
	k := NewKeyBERT(&mapEmbedder{err: errors.New("model loading")}, discardLogger())
	_, err := k.ExtractKeywords(context.Background(), insights.KeywordRequest{
		Text:  "keyword extraction",
		Ngram: insights.NgramRange{Low: 1, High: 1},
		TopN:  3,
	})
	require.EqualError(t, err, "embed candidates: model loading")
}

func TestKeyBERTDimensionMismatch(t *testing.T) {
	emb := &mapEmbedder{vectors: map[string][]float32{
		"keyword extraction": {1, 0},
		"keyword":            {1},
		"extraction":         {1, 0},
	}}
	k := NewKeyBERT(emb, discardLogger())
	_, err := k.ExtractKeywords(context.Background(), insights.KeywordRequest{
		Text:  "keyword extraction",
		Ngram: insights.NgramRange{Low: 1, High: 1},
		TopN:  3,
	})
	require.ErrorContains(t, err, "vectors must have the same dimension")
}

func TestRAKEFiltersAndNormalizes(t *testing.T) {
	r := NewRAKE(discardLogger())
	r.run = func(string) rake.PairList {
		return rake.PairList{
			{Key: "lazy dog", Value: 4},
			{Key: "fox", Value: 1},
			{Key: "quick brown fox", Value: 9},
			{Key: "Lazy  Dog", Value: 4},
		}
	}

	got, err := r.ExtractKeywords(context.Background(), insights.KeywordRequest{
		Text:      "ignored",
		Ngram:     insights.NgramRange{Low: 1, High: 2},
		StopWords: insights.EnglishStopWords,
		TopN:      5,
	})
	require.NoError(t, err)
	require.Equal(t, []insights.Keyword{{Phrase: "lazy dog", Score: 1}, {Phrase: "fox", Score: 0.25}}, got)
}

func TestRAKERespectsTopN(t *testing.T) {
	r := NewRAKE(discardLogger())
	got, err := r.ExtractKeywords(context.Background(), insights.KeywordRequest{
		Text:      "Compatibility of systems of linear constraints over the set of natural numbers. Criteria of compatibility of a system of linear Diophantine equations are considered.",
		Ngram:     insights.NgramRange{Low: 1, High: 3},
		StopWords: insights.EnglishStopWords,
		TopN:      3,
	})
	require.NoError(t, err)
	require.LessOrEqual(t, len(got), 3)
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := cosineSimilarity([]float32{1, 0}, []float32{0, 0})
	require.NoError(t, err)
	require.Zero(t, sim)

	sim, err = cosineSimilarity([]float32{2, 0}, []float32{3, 0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, sim, 1e-9)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mapEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (m *mapEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectors[text]
	}
	return out, nil
}
