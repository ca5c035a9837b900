package insights

import (
	"fmt"
	"strings"
)

const (
	// ExportFileName is the name offered for the download.
	ExportFileName = "summary_keywords.txt"
	// ExportMimeType is the content type of the download.
	ExportMimeType = "text/plain"
	// NoKeywordsMessage replaces the keyword list when nothing was found.
	NoKeywordsMessage = "No keywords found."
)

// Present formats an already validated summary and keyword list.
func Present(summary string, keywords []Keyword) Presentation {
	p := Presentation{
		Summary:      summary,
		KeywordLines: KeywordLines(keywords),
		NoKeywords:   len(keywords) == 0,
		Export: Export{
			FileName: ExportFileName,
			MimeType: ExportMimeType,
			Content:  ExportText(summary, keywords),
		},
	}
	if !p.NoKeywords {
		chart := BuildChart(keywords)
		p.Chart = &chart
	}
	return p
}

// KeywordLines renders one bullet per keyword with a two decimal score.
func KeywordLines(keywords []Keyword) []string {
	if len(keywords) == 0 {
		return []string{NoKeywordsMessage}
	}
	lines := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lines = append(lines, fmt.Sprintf("• %s — relevance: %.2f", kw.Phrase, kw.Score))
	}
	return lines
}

// BuildChart returns labels and scores in keyword order. The category axis is
// inverted so the first, highest scoring keyword is drawn on top.
func BuildChart(keywords []Keyword) Chart {
	labels := make([]string, len(keywords))
	scores := make([]float64, len(keywords))
	for i, kw := range keywords {
		labels[i] = kw.Phrase
		scores[i] = kw.Score
	}
	return Chart{
		Title:              "Keyword Importance",
		XLabel:             "Relevance Score",
		YLabel:             "Keyword / Phrase",
		Labels:             labels,
		Scores:             scores,
		InvertCategoryAxis: true,
	}
}

// ExportText serializes the summary and the keyword phrases. Scores are not included.
func ExportText(summary string, keywords []Keyword) string {
	var b strings.Builder
	b.WriteString("SUMMARY:\n")
	b.WriteString(summary)
	b.WriteString("\n\nKEYWORDS:\n")
	for i, kw := range keywords {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(kw.Phrase)
	}
	return b.String()
}
