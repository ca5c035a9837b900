package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/text-insights/internal/domain/insights"
	"github.com/yanqian/text-insights/internal/infra/config"
	"github.com/yanqian/text-insights/internal/infra/embedder"
	"github.com/yanqian/text-insights/internal/infra/keyword"
	"github.com/yanqian/text-insights/internal/infra/llm/chatgpt"
	"github.com/yanqian/text-insights/internal/infra/llm/huggingface"
	"github.com/yanqian/text-insights/internal/infra/modelhandle"
	"github.com/yanqian/text-insights/internal/infra/summarizer"
	"github.com/yanqian/text-insights/internal/infra/tokencount"
	httpiface "github.com/yanqian/text-insights/internal/interface/http"
)

// provideInsightsConfig applies the configured control defaults. config.Validate
// has already rejected values outside the slider bounds.
func provideInsightsConfig(cfg *config.Config) insights.Config {
	bounds := insights.DefaultOptions()
	ic := cfg.Insights

	if ic.DefaultMinLength != 0 {
		bounds.MinLength.Default = ic.DefaultMinLength
	}
	if ic.DefaultMaxLength != 0 {
		bounds.MaxLength.Default = ic.DefaultMaxLength
	}
	if ic.DefaultNumKeywords != 0 {
		bounds.NumKeywords.Default = ic.DefaultNumKeywords
	}
	if _, ok := insights.LookupNgramRange(ic.DefaultNgram); ok {
		bounds.DefaultNgram = ic.DefaultNgram
	}
	if source, ok := insights.ParseSource(ic.DefaultSource); ok {
		bounds.DefaultSource = source
	}
	return insights.Config{Bounds: bounds}
}

func provideHuggingFaceClient(cfg *config.Config) (*huggingface.Client, error) {
	return huggingface.NewClient(cfg.HuggingFace.Token, cfg.HuggingFace.BaseURL, cfg.HuggingFace.Timeout)
}

// provideChatGPTClient returns nil when no API key is configured; only the
// openai backends need it and config validation enforces the key for them.
func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, nil
	}
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideSummaryModels(cfg *config.Config, hf *huggingface.Client, gpt *chatgpt.Client, logger *slog.Logger) insights.SummaryModelProvider {
	backend := cfg.Summarizer.Backend
	model := strings.TrimSpace(cfg.Summarizer.Model)

	load := func(context.Context) (insights.SummaryModel, error) {
		switch backend {
		case config.SummarizerOpenAI:
			if gpt == nil {
				return nil, errors.New("openai client is not configured")
			}
			if model == "" {
				model = cfg.LLM.Model
			}
			return summarizer.NewOpenAISummarizer(gpt, model, logger), nil
		default:
			if hf == nil {
				return nil, errors.New("huggingface client is not configured")
			}
			return summarizer.NewHuggingFaceSummarizer(hf, model, logger), nil
		}
	}
	return modelhandle.New("summarizer/"+backend, load, logger)
}

func provideKeywordModels(cfg *config.Config, hf *huggingface.Client, gpt *chatgpt.Client, logger *slog.Logger) insights.KeywordModelProvider {
	kc := cfg.Keywords
	if kc.Backend == config.KeywordRAKE {
		return modelhandle.Ready[insights.KeywordModel]("keywords/"+kc.Backend, keyword.NewRAKE(logger))
	}

	load := func(context.Context) (insights.KeywordModel, error) {
		var emb keyword.Embedder
		switch kc.Embedder {
		case config.EmbedderDeterministic:
			emb = embedder.NewDeterministicEmbedder(kc.Dimensions)
		case config.EmbedderOpenAI:
			if gpt == nil {
				return nil, errors.New("openai client is not configured")
			}
			emb = embedder.NewOpenAIEmbedder(gpt, kc.EmbeddingModel, logger)
		default:
			if hf == nil {
				return nil, errors.New("huggingface client is not configured")
			}
			emb = embedder.NewHuggingFaceEmbedder(hf, kc.EmbeddingModel, kc.BatchSize, logger)
		}
		return keyword.NewKeyBERT(emb, logger), nil
	}
	return modelhandle.New("keywords/"+kc.Backend, load, logger)
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) insights.TokenCounter {
	return tokencount.New(cfg.Tokens.Encoding, logger)
}

func provideRateLimiter(cfg *config.Config, logger *slog.Logger) httpiface.RateLimiter {
	rl := cfg.HTTP.RateLimit
	if !rl.Enabled {
		return httpiface.NoopRateLimiter()
	}
	if rl.Store == config.RateLimitValkey {
		opt, err := buildValkeyOptions(rl.ValkeyAddr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory rate limiter", "error", err)
			return httpiface.NewMemoryRateLimiter(rl)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory rate limiter", "error", err)
			return httpiface.NewMemoryRateLimiter(rl)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory rate limiter", "error", err)
			client.Close()
			return httpiface.NewMemoryRateLimiter(rl)
		}
		logger.Info("valkey rate limiter enabled", "addr", rl.ValkeyAddr)
		return httpiface.NewValkeyRateLimiter(client, rl, "text-insights:ratelimit")
	}
	return httpiface.NewMemoryRateLimiter(rl)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
