package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/text-insights/internal/domain/insights"
)

// Summarizer backends.
const (
	SummarizerHuggingFace = "huggingface"
	SummarizerOpenAI      = "openai"
)

// Keyword backends.
const (
	KeywordKeyBERT = "keybert"
	KeywordRAKE    = "rake"
)

// Embedding backends used by KeyBERT.
const (
	EmbedderHuggingFace   = "huggingface"
	EmbedderOpenAI        = "openai"
	EmbedderDeterministic = "deterministic"
)

// Rate limit stores.
const (
	RateLimitMemory = "memory"
	RateLimitValkey = "valkey"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" envPrefix:"HTTP_"`
	Insights    InsightsConfig    `yaml:"insights" envPrefix:"INSIGHTS_"`
	Summarizer  SummarizerConfig  `yaml:"summarizer" envPrefix:"SUMMARIZER_"`
	Keywords    KeywordsConfig    `yaml:"keywords" envPrefix:"KEYWORDS_"`
	HuggingFace HuggingFaceConfig `yaml:"huggingFace" envPrefix:"HF_"`
	LLM         LLMConfig         `yaml:"llm" envPrefix:"LLM_"`
	Tokens      TokensConfig      `yaml:"tokens" envPrefix:"TOKENS_"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address" env:"ADDRESS"`
	ReadTimeout    time.Duration   `yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	MaxBodyBytes   int64           `yaml:"maxBodyBytes" env:"MAX_BODY_BYTES"`
	AllowedOrigins []string        `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig `yaml:"rateLimit" envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool   `yaml:"enabled" env:"ENABLED"`
	RequestsPerMinute int    `yaml:"requestsPerMinute" env:"RPM"`
	Burst             int    `yaml:"burst" env:"BURST"`
	Store             string `yaml:"store" env:"STORE"`
	ValkeyAddr        string `yaml:"valkeyAddr" env:"VALKEY_ADDR"`
}

// InsightsConfig sets the defaults offered by the demo controls.
type InsightsConfig struct {
	DefaultMinLength   int    `yaml:"defaultMinLength" env:"DEFAULT_MIN_LENGTH"`
	DefaultMaxLength   int    `yaml:"defaultMaxLength" env:"DEFAULT_MAX_LENGTH"`
	DefaultNumKeywords int    `yaml:"defaultNumKeywords" env:"DEFAULT_NUM_KEYWORDS"`
	DefaultNgram       string `yaml:"defaultNgram" env:"DEFAULT_NGRAM"`
	DefaultSource      string `yaml:"defaultSource" env:"DEFAULT_SOURCE"`
}

// SummarizerConfig selects the summarization model. An empty model picks the backend default.
type SummarizerConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Model   string `yaml:"model" env:"MODEL"`
}

// KeywordsConfig selects the keyword model and, for KeyBERT, its embeddings.
type KeywordsConfig struct {
	Backend        string `yaml:"backend" env:"BACKEND"`
	Embedder       string `yaml:"embedder" env:"EMBEDDER"`
	EmbeddingModel string `yaml:"embeddingModel" env:"EMBEDDING_MODEL"`
	BatchSize      int    `yaml:"batchSize" env:"BATCH_SIZE"`
	Dimensions     int    `yaml:"dimensions" env:"DIMENSIONS"`
}

// HuggingFaceConfig points at the inference API.
type HuggingFaceConfig struct {
	Token   string        `yaml:"token" env:"TOKEN"`
	BaseURL string        `yaml:"baseUrl" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// LLMConfig contains OpenAI settings.
type LLMConfig struct {
	APIKey  string `yaml:"apiKey" env:"API_KEY"`
	BaseURL string `yaml:"baseUrl" env:"BASE_URL"`
	Model   string `yaml:"model" env:"MODEL"`
}

// TokensConfig selects the encoding used for token estimates.
type TokensConfig struct {
	Encoding string `yaml:"encoding" env:"ENCODING"`
}

// Load reads configuration from a YAML file, a .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// applyEnvOverrides only touches fields whose variable is set.
func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute,
			MaxBodyBytes: 1 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
				Store:             RateLimitMemory,
			},
		},
		Insights: InsightsConfig{
			DefaultMinLength:   30,
			DefaultMaxLength:   120,
			DefaultNumKeywords: 7,
			DefaultNgram:       "(1,2)",
			DefaultSource:      "original",
		},
		Summarizer: SummarizerConfig{
			Backend: SummarizerHuggingFace,
		},
		Keywords: KeywordsConfig{
			Backend:        KeywordKeyBERT,
			Embedder:       EmbedderHuggingFace,
			EmbeddingModel: "sentence-transformers/all-MiniLM-L6-v2",
			BatchSize:      64,
			Dimensions:     256,
		},
		HuggingFace: HuggingFaceConfig{
			BaseURL: "https://api-inference.huggingface.co",
			Timeout: 2 * time.Minute,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Tokens: TokensConfig{
			Encoding: "cl100k_base",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.maxBodyBytes must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		switch c.HTTP.RateLimit.Store {
		case RateLimitMemory:
		case RateLimitValkey:
			if strings.TrimSpace(c.HTTP.RateLimit.ValkeyAddr) == "" {
				return errors.New("http.rateLimit.valkeyAddr cannot be empty when the valkey store is selected")
			}
		default:
			return fmt.Errorf("http.rateLimit.store %q is not supported", c.HTTP.RateLimit.Store)
		}
	}
	if c.Insights.DefaultMaxLength != 0 && c.Insights.DefaultMinLength > c.Insights.DefaultMaxLength {
		return errors.New("insights.defaultMinLength cannot exceed insights.defaultMaxLength")
	}
	if err := c.Insights.validate(insights.DefaultOptions()); err != nil {
		return err
	}
	switch c.Summarizer.Backend {
	case SummarizerHuggingFace:
	case SummarizerOpenAI:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return errors.New("llm.apiKey is required for the openai summarizer")
		}
	default:
		return fmt.Errorf("summarizer.backend %q is not supported", c.Summarizer.Backend)
	}
	if c.Summarizer.Backend == SummarizerOpenAI && strings.TrimSpace(c.Summarizer.Model) == "" && strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("summarizer.model or llm.model must be set for the openai summarizer")
	}
	switch c.Keywords.Backend {
	case KeywordRAKE:
	case KeywordKeyBERT:
		switch c.Keywords.Embedder {
		case EmbedderHuggingFace, EmbedderDeterministic:
		case EmbedderOpenAI:
			if strings.TrimSpace(c.LLM.APIKey) == "" {
				return errors.New("llm.apiKey is required for the openai embedder")
			}
		default:
			return fmt.Errorf("keywords.embedder %q is not supported", c.Keywords.Embedder)
		}
	default:
		return fmt.Errorf("keywords.backend %q is not supported", c.Keywords.Backend)
	}
	if c.HuggingFace.Timeout < 0 {
		return errors.New("huggingFace.timeout cannot be negative")
	}
	// A run makes one summarization call and at least one embedding call.
	if c.HTTP.WriteTimeout > 0 && c.HTTP.WriteTimeout <= 2*c.HuggingFace.Timeout {
		return fmt.Errorf("http.writeTimeout (%s) must exceed twice huggingFace.timeout (%s)", c.HTTP.WriteTimeout, c.HuggingFace.Timeout)
	}
	return nil
}

// validate rejects defaults the demo controls could never produce. Zero and
// empty values keep the built in defaults.
func (c InsightsConfig) validate(bounds insights.Options) error {
	sliders := []struct {
		name   string
		value  int
		slider insights.Slider
	}{
		{"insights.defaultMinLength", c.DefaultMinLength, bounds.MinLength},
		{"insights.defaultMaxLength", c.DefaultMaxLength, bounds.MaxLength},
		{"insights.defaultNumKeywords", c.DefaultNumKeywords, bounds.NumKeywords},
	}
	for _, s := range sliders {
		if s.value != 0 && (s.value < s.slider.Min || s.value > s.slider.Max) {
			return fmt.Errorf("%s must be between %d and %d", s.name, s.slider.Min, s.slider.Max)
		}
	}
	if strings.TrimSpace(c.DefaultNgram) != "" {
		if _, ok := insights.LookupNgramRange(c.DefaultNgram); !ok {
			return fmt.Errorf("insights.defaultNgram %q is not one of %s", c.DefaultNgram, strings.Join(bounds.NgramOptions, ", "))
		}
	}
	if strings.TrimSpace(c.DefaultSource) != "" {
		if _, ok := insights.ParseSource(c.DefaultSource); !ok {
			return fmt.Errorf("insights.defaultSource %q is not supported", c.DefaultSource)
		}
	}
	return nil
}
