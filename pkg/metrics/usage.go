package metrics

// TokenUsage captures token counts estimated for a run.
type TokenUsage struct {
	InputTokens   int    `json:"inputTokens"`
	SummaryTokens int    `json:"summaryTokens"`
	Encoding      string `json:"encoding,omitempty"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.InputTokens == 0 && u.SummaryTokens == 0
}
