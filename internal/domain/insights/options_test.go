package insights

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

func TestLookupNgramRange(t *testing.T) {
	tests := []struct {
		label string
		want  NgramRange
		ok    bool
	}{
		{label: "(1,1)", want: NgramRange{Low: 1, High: 1}, ok: true},
		{label: "(1, 2)", want: NgramRange{Low: 1, High: 2}, ok: true},
		{label: " (1,3) ", want: NgramRange{Low: 1, High: 3}, ok: true},
		{label: "(2,1)", ok: false},
		{label: "__import__('os')", ok: false},
		{label: "", ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			got, ok := LookupNgramRange(tt.label)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		raw  string
		want ExtractionSource
		ok   bool
	}{
		{raw: "original", want: SourceOriginal, ok: true},
		{raw: "Original Text", want: SourceOriginal, ok: true},
		{raw: "SUMMARY", want: SourceSummary, ok: true},
		{raw: "both", ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseSource(tt.raw)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewRunConfigDefaults(t *testing.T) {
	cfg, err := NewRunConfig(Request{Text: "anything"}, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, RunConfig{
		MinLength:   30,
		MaxLength:   120,
		NumKeywords: 7,
		Ngram:       NgramRange{Low: 1, High: 2},
		Source:      SourceOriginal,
	}, cfg)
}

func TestNewRunConfigExplicitValues(t *testing.T) {
	cfg, err := NewRunConfig(Request{
		MinLength:   20,
		MaxLength:   50,
		NumKeywords: 5,
		NgramRange:  "(1,3)",
		Source:      "summary",
	}, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 20, cfg.MinLength)
	require.Equal(t, 50, cfg.MaxLength)
	require.Equal(t, 5, cfg.NumKeywords)
	require.Equal(t, NgramRange{Low: 1, High: 3}, cfg.Ngram)
	require.Equal(t, SourceSummary, cfg.Source)
}

func TestNewRunConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantMsg string
	}{
		{name: "min above max", req: Request{MinLength: 150, MaxLength: 50}, wantMsg: "minLength (150) cannot exceed maxLength (50)"},
		{name: "min out of bounds", req: Request{MinLength: 5}, wantMsg: "minLength must be between 20 and 150"},
		{name: "max out of bounds", req: Request{MaxLength: 1000}, wantMsg: "maxLength must be between 50 and 300"},
		{name: "too many keywords", req: Request{NumKeywords: 50}, wantMsg: "numKeywords must be between 3 and 15"},
		{name: "unknown ngram", req: Request{NgramRange: "(1,9)"}, wantMsg: `unsupported n-gram range "(1,9)"`},
		{name: "unknown source", req: Request{Source: "title"}, wantMsg: `unsupported extraction source "title"`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewRunConfig(tt.req, DefaultOptions())
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, CodeInvalidConfig))
			require.Equal(t, StageValidate, apperrors.StageOf(err))
			require.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestNewRunConfigUnboundedSliders(t *testing.T) {
	bounds := Options{DefaultNgram: "(1,1)", DefaultSource: SourceOriginal}
	_, err := NewRunConfig(Request{MinLength: 10, MaxLength: 5, NumKeywords: 1}, bounds)
	require.True(t, apperrors.IsCode(err, CodeInvalidConfig))

	cfg, err := NewRunConfig(Request{MinLength: 1, MaxLength: 5, NumKeywords: 1}, bounds)
	require.NoError(t, err)
	require.Equal(t, NgramRange{Low: 1, High: 1}, cfg.Ngram)
}
