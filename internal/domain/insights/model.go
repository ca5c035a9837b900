package insights

import (
	"context"
	"errors"

	"github.com/yanqian/text-insights/pkg/metrics"
)

// Pipeline stages, reported on every failure.
const (
	StageValidate  = "validate"
	StageSummarize = "summarize"
	StageKeywords  = "keywords"
)

// Error codes surfaced to the transport layer.
const (
	CodeEmptyInput              = "empty_input"
	CodeInvalidConfig           = "invalid_config"
	CodeModelUnavailable        = "model_unavailable"
	CodeSummarizationFailed     = "summarization_failed"
	CodeKeywordExtractionFailed = "keyword_extraction_failed"
)

// EmptyInputMessage is the warning shown when there is nothing to summarize.
const EmptyInputMessage = "Please enter some text before generating a summary!"

// EnglishStopWords is the only stop-word policy the pipeline requests.
const EnglishStopWords = "english"

// ErrModelUnavailable is wrapped by collaborators whose model cannot be reached or loaded.
var ErrModelUnavailable = errors.New("model unavailable")

// ExtractionSource selects the text keywords are drawn from.
type ExtractionSource string

const (
	SourceOriginal ExtractionSource = "original"
	SourceSummary  ExtractionSource = "summary"
)

// Label is the human readable name used by the demo page.
func (s ExtractionSource) Label() string {
	if s == SourceSummary {
		return "Summary"
	}
	return "Original Text"
}

// NgramRange bounds the number of words in a candidate keyphrase.
type NgramRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// RunConfig is the validated, immutable configuration of a single run.
type RunConfig struct {
	MinLength   int              `json:"minLength"`
	MaxLength   int              `json:"maxLength"`
	NumKeywords int              `json:"numKeywords"`
	Ngram       NgramRange       `json:"ngramRange"`
	Source      ExtractionSource `json:"source"`
}

// Request carries the raw user parameters. Zero values select the defaults.
type Request struct {
	Text        string `json:"text" form:"text"`
	MinLength   int    `json:"minLength,omitempty" form:"minLength"`
	MaxLength   int    `json:"maxLength,omitempty" form:"maxLength"`
	NumKeywords int    `json:"numKeywords,omitempty" form:"numKeywords"`
	NgramRange  string `json:"ngramRange,omitempty" form:"ngramRange"`
	Source      string `json:"source,omitempty" form:"source"`
}

// Keyword is one ranked phrase.
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// Chart holds the parallel sequences for a horizontal bar rendering.
type Chart struct {
	Title              string    `json:"title"`
	XLabel             string    `json:"xLabel"`
	YLabel             string    `json:"yLabel"`
	Labels             []string  `json:"labels"`
	Scores             []float64 `json:"scores"`
	InvertCategoryAxis bool      `json:"invertCategoryAxis"`
}

// Export is the downloadable artifact.
type Export struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}

// Presentation is everything the UI needs to render a finished run.
type Presentation struct {
	Summary      string   `json:"summary"`
	KeywordLines []string `json:"keywordLines"`
	NoKeywords   bool     `json:"noKeywords"`
	Chart        *Chart   `json:"chart,omitempty"`
	Export       Export   `json:"export"`
}

// Result is returned by Service.Generate.
type Result struct {
	Presentation
	Keywords    []Keyword           `json:"keywords"`
	Source      ExtractionSource    `json:"source"`
	SourceLabel string              `json:"sourceLabel"`
	Config      RunConfig           `json:"config"`
	DurationMs  int64               `json:"durationMs"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// SummaryRequest is what the summarization collaborator receives.
type SummaryRequest struct {
	Text          string
	MinLength     int
	MaxLength     int
	Deterministic bool
}

// KeywordRequest is what the keyword collaborator receives.
type KeywordRequest struct {
	Text      string
	Ngram     NgramRange
	StopWords string
	TopN      int
}

// SummaryModel produces one abstractive summary.
type SummaryModel interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// KeywordModel ranks keyphrases by relevance to the text.
type KeywordModel interface {
	ExtractKeywords(ctx context.Context, req KeywordRequest) ([]Keyword, error)
}

// SummaryModelProvider hands out the process-wide summarization model.
type SummaryModelProvider interface {
	Get(ctx context.Context) (SummaryModel, error)
}

// KeywordModelProvider hands out the process-wide keyword model.
type KeywordModelProvider interface {
	Get(ctx context.Context) (KeywordModel, error)
}

// TokenCounter estimates token counts for reporting. Both counts and the
// encoding name in the returned usage come from a single tokenizer lookup.
type TokenCounter interface {
	Usage(ctx context.Context, input, summary string) metrics.TokenUsage
}
