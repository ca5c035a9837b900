package keyword

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yanqian/text-insights/internal/domain/insights"
)

// Tokens are runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and drops stop words.
func Tokenize(text string, stopWords string) []string {
	stop := stopWordsFor(stopWords)
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if stop.has(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Candidates returns the unique n-grams of the filtered token stream, sorted
// alphabetically. Stop words are removed before n-grams are formed.
func Candidates(text string, ngram insights.NgramRange, stopWords string) []string {
	tokens := Tokenize(text, stopWords)
	if len(tokens) == 0 || ngram.Low < 1 || ngram.High < ngram.Low {
		return nil
	}

	seen := make(map[string]struct{})
	for n := ngram.Low; n <= ngram.High; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			seen[strings.Join(tokens[i:i+n], " ")] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for phrase := range seen {
		out = append(out, phrase)
	}
	sort.Strings(out)
	return out
}
