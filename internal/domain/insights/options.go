package insights

import (
	"fmt"
	"strings"

	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

// Slider describes one bounded numeric control.
type Slider struct {
	Label   string `json:"label"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Default int    `json:"default"`
	Step    int    `json:"step"`
}

// SourceOption is one choice of the extraction source switch.
type SourceOption struct {
	Value ExtractionSource `json:"value"`
	Label string           `json:"label"`
}

// Options lists the controls the UI offers and the bounds a RunConfig must respect.
type Options struct {
	MinLength     Slider           `json:"minLength"`
	MaxLength     Slider           `json:"maxLength"`
	NumKeywords   Slider           `json:"numKeywords"`
	NgramOptions  []string         `json:"ngramOptions"`
	DefaultNgram  string           `json:"defaultNgram"`
	Sources       []SourceOption   `json:"sources"`
	DefaultSource ExtractionSource `json:"defaultSource"`
}

type ngramOption struct {
	label string
	value NgramRange
}

// The only accepted n-gram selections. Labels are looked up, never parsed.
var ngramOptions = []ngramOption{
	{label: "(1,1)", value: NgramRange{Low: 1, High: 1}},
	{label: "(1,2)", value: NgramRange{Low: 1, High: 2}},
	{label: "(1,3)", value: NgramRange{Low: 1, High: 3}},
}

// DefaultOptions mirrors the controls of the demo page.
func DefaultOptions() Options {
	labels := make([]string, 0, len(ngramOptions))
	for _, opt := range ngramOptions {
		labels = append(labels, opt.label)
	}
	return Options{
		MinLength:    Slider{Label: "Minimum summary length (tokens)", Min: 20, Max: 150, Default: 30, Step: 5},
		MaxLength:    Slider{Label: "Maximum summary length (tokens)", Min: 50, Max: 300, Default: 120, Step: 10},
		NumKeywords:  Slider{Label: "Number of keywords to extract", Min: 3, Max: 15, Default: 7, Step: 1},
		NgramOptions: labels,
		DefaultNgram: "(1,2)",
		Sources: []SourceOption{
			{Value: SourceOriginal, Label: SourceOriginal.Label()},
			{Value: SourceSummary, Label: SourceSummary.Label()},
		},
		DefaultSource: SourceOriginal,
	}
}

// LookupNgramRange maps an option label to its range.
func LookupNgramRange(label string) (NgramRange, bool) {
	label = strings.ReplaceAll(strings.TrimSpace(label), " ", "")
	for _, opt := range ngramOptions {
		if opt.label == label {
			return opt.value, true
		}
	}
	return NgramRange{}, false
}

// ParseSource accepts both the wire values and the page labels.
func ParseSource(raw string) (ExtractionSource, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "original", "original text":
		return SourceOriginal, true
	case "summary":
		return SourceSummary, true
	default:
		return "", false
	}
}

// NewRunConfig resolves defaults and validates the user parameters against the bounds.
func NewRunConfig(req Request, bounds Options) (RunConfig, error) {
	cfg := RunConfig{
		MinLength:   orDefault(req.MinLength, bounds.MinLength.Default),
		MaxLength:   orDefault(req.MaxLength, bounds.MaxLength.Default),
		NumKeywords: orDefault(req.NumKeywords, bounds.NumKeywords.Default),
		Source:      bounds.DefaultSource,
	}

	ngramLabel := req.NgramRange
	if strings.TrimSpace(ngramLabel) == "" {
		ngramLabel = bounds.DefaultNgram
	}
	ngram, ok := LookupNgramRange(ngramLabel)
	if !ok {
		return RunConfig{}, invalidConfig(fmt.Sprintf("unsupported n-gram range %q", req.NgramRange))
	}
	cfg.Ngram = ngram

	if strings.TrimSpace(req.Source) != "" {
		source, ok := ParseSource(req.Source)
		if !ok {
			return RunConfig{}, invalidConfig(fmt.Sprintf("unsupported extraction source %q", req.Source))
		}
		cfg.Source = source
	}
	if cfg.Source == "" {
		cfg.Source = SourceOriginal
	}

	if err := checkSlider("minLength", cfg.MinLength, bounds.MinLength); err != nil {
		return RunConfig{}, err
	}
	if err := checkSlider("maxLength", cfg.MaxLength, bounds.MaxLength); err != nil {
		return RunConfig{}, err
	}
	if err := checkSlider("numKeywords", cfg.NumKeywords, bounds.NumKeywords); err != nil {
		return RunConfig{}, err
	}
	if cfg.MinLength < 0 {
		return RunConfig{}, invalidConfig("minLength cannot be negative")
	}
	if cfg.MinLength > cfg.MaxLength {
		return RunConfig{}, invalidConfig(fmt.Sprintf("minLength (%d) cannot exceed maxLength (%d)", cfg.MinLength, cfg.MaxLength))
	}
	if cfg.NumKeywords < 1 {
		return RunConfig{}, invalidConfig("numKeywords must be at least 1")
	}
	if cfg.Ngram.Low < 1 || cfg.Ngram.High < cfg.Ngram.Low {
		return RunConfig{}, invalidConfig("invalid n-gram range")
	}
	return cfg, nil
}

func checkSlider(name string, value int, s Slider) error {
	if s.Min == 0 && s.Max == 0 {
		return nil
	}
	if value < s.Min || value > s.Max {
		return invalidConfig(fmt.Sprintf("%s must be between %d and %d", name, s.Min, s.Max))
	}
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func invalidConfig(message string) error {
	return apperrors.WrapStage(StageValidate, CodeInvalidConfig, message, nil)
}
