// Package tokencount estimates how many tokens a text occupies.
package tokencount

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/text-insights/internal/infra/modelhandle"
	"github.com/yanqian/text-insights/pkg/metrics"
)

// DefaultEncoding is the BPE vocabulary used for estimates.
const DefaultEncoding = "cl100k_base"

// WordsEncoding names the fallback unit used when the BPE vocabulary is unavailable.
const WordsEncoding = "words"

// loadTimeout bounds the vocabulary download tiktoken performs on first use.
const loadTimeout = 10 * time.Second

// encoder is the part of *tiktoken.Tiktoken the counter uses.
type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// Counter counts tokens with tiktoken. When the encoding cannot be loaded it
// falls back to whitespace separated words.
type Counter struct {
	encoding string
	handle   *modelhandle.Handle[encoder]
	logger   *slog.Logger
}

// New builds a counter whose encoding is loaded on first use.
func New(encoding string, logger *slog.Logger) *Counter {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	return newCounter(encoding, modelhandle.New("tiktoken/"+encoding, loadEncoding(encoding), logger), logger)
}

func newCounter(encoding string, handle *modelhandle.Handle[encoder], logger *slog.Logger) *Counter {
	return &Counter{encoding: encoding, handle: handle, logger: logger.With("component", "tokencount")}
}

// loadEncoding runs tiktoken's blocking download under ctx and a deadline.
// An abandoned download finishes in the background and is discarded.
func loadEncoding(encoding string) modelhandle.Loader[encoder] {
	type result struct {
		enc encoder
		err error
	}
	return func(ctx context.Context) (encoder, error) {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()

		done := make(chan result, 1)
		go func() {
			enc, err := tiktoken.GetEncoding(encoding)
			if err != nil {
				done <- result{err: err}
				return
			}
			done <- result{enc: enc}
		}()

		select {
		case r := <-done:
			return r.enc, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Usage counts input and summary with one encoding lookup, so both counts
// and the reported unit always come from the same tokenizer.
func (c *Counter) Usage(ctx context.Context, input, summary string) metrics.TokenUsage {
	enc, err := c.handle.Get(ctx)
	if err != nil {
		c.logger.Warn("token encoding unavailable, counting words", "model", c.handle.Name(), "error", err)
		return metrics.TokenUsage{
			InputTokens:   countWords(input),
			SummaryTokens: countWords(summary),
			Encoding:      WordsEncoding,
		}
	}
	return metrics.TokenUsage{
		InputTokens:   countTokens(enc, input),
		SummaryTokens: countTokens(enc, summary),
		Encoding:      c.encoding,
	}
}

func countTokens(enc encoder, text string) int {
	if text == "" {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
