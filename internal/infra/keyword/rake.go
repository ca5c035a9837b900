package keyword

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	rake "github.com/afjoseph/RAKE.Go"

	"github.com/yanqian/text-insights/internal/domain/insights"
)

// RAKE scores phrases by word co-occurrence. It runs fully offline.
type RAKE struct {
	run    func(text string) rake.PairList
	logger *slog.Logger
}

// NewRAKE builds the extractor.
func NewRAKE(logger *slog.Logger) *RAKE {
	return &RAKE{run: rake.RunRake, logger: logger.With("component", "keyword.rake")}
}

// ExtractKeywords keeps phrases whose word count fits the n-gram range and
// normalizes scores against the best phrase, so the top keyword scores 1.
func (r *RAKE) ExtractKeywords(_ context.Context, req insights.KeywordRequest) ([]insights.Keyword, error) {
	out := []insights.Keyword{}
	if req.TopN <= 0 {
		return out, nil
	}
	stop := stopWordsFor(req.StopWords)
	seen := make(map[string]struct{})

	pairs := append(rake.PairList(nil), r.run(req.Text)...)
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Value > pairs[j].Value })

	var top float64
	for _, pair := range pairs {
		phrase := strings.Join(strings.Fields(strings.ToLower(pair.Key)), " ")
		words := strings.Fields(phrase)
		if len(words) < req.Ngram.Low || len(words) > req.Ngram.High {
			continue
		}
		if len(words) == 1 && stop.has(words[0]) {
			continue
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		if top == 0 {
			top = pair.Value
		}
		out = append(out, insights.Keyword{Phrase: phrase, Score: pair.Value})
		if len(out) == req.TopN {
			break
		}
	}
	if top > 0 {
		for i := range out {
			out[i].Score = round4(out[i].Score / top)
		}
	}
	r.logger.Debug("keywords ranked", "returned", len(out))
	return out, nil
}

var _ insights.KeywordModel = (*RAKE)(nil)
