package insights

import (
	"context"
	"log/slog"

	"github.com/yanqian/text-insights/pkg/util"
)

// Config configures the insights pipeline.
type Config struct {
	Bounds Options
}

// Service exposes the summarize and extract pipeline.
type Service interface {
	Generate(ctx context.Context, req Request) (Result, error)
	Options() Options
}

type service struct {
	cfg        Config
	summarizer *SummaryInvoker
	extractor  *KeywordExtractor
	tokens     TokenCounter
	clock      util.Clock
	logger     *slog.Logger
}

// NewService is a wire provider for the insights domain. tokens may be nil.
func NewService(cfg Config, summaries SummaryModelProvider, keywords KeywordModelProvider, tokens TokenCounter, logger *slog.Logger) Service {
	if len(cfg.Bounds.NgramOptions) == 0 {
		cfg.Bounds = DefaultOptions()
	}
	return &service{
		cfg:        cfg,
		summarizer: NewSummaryInvoker(summaries, logger),
		extractor:  NewKeywordExtractor(keywords, logger),
		tokens:     tokens,
		clock:      util.NowUTC,
		logger:     logger.With("component", "insights.service"),
	}
}

func (s *service) Options() Options {
	return s.cfg.Bounds
}

// Generate runs validate, summarize, extract and present in order. Any failure
// stops the run; nothing from a later stage is produced.
func (s *service) Generate(ctx context.Context, req Request) (Result, error) {
	start := s.clock()

	if err := ValidateInput(req.Text); err != nil {
		s.logger.Warn("empty input rejected")
		return Result{}, err
	}
	cfg, err := NewRunConfig(req, s.cfg.Bounds)
	if err != nil {
		s.logger.Warn("invalid run config", "error", err)
		return Result{}, err
	}

	summary, err := s.summarizer.Invoke(ctx, req.Text, cfg)
	if err != nil {
		return Result{}, err
	}

	source := SelectSource(cfg, req.Text, summary)
	keywords, err := s.extractor.Extract(ctx, source, cfg)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Presentation: Present(summary, keywords),
		Keywords:     keywords,
		Source:       cfg.Source,
		SourceLabel:  cfg.Source.Label(),
		Config:       cfg,
		DurationMs:   util.ElapsedMs(s.clock, start),
	}
	if s.tokens != nil {
		if usage := s.tokens.Usage(ctx, req.Text, summary); !usage.IsZero() {
			result.TokenUsage = &usage
		}
	}

	s.logger.Info("run completed",
		"source", cfg.Source,
		"min_length", cfg.MinLength,
		"max_length", cfg.MaxLength,
		"keywords", len(keywords),
		"duration_ms", result.DurationMs,
	)
	return result, nil
}
