package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api-inference.huggingface.co"

// Options mirrors the inference API "options" object.
type Options struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// SummarizationParameters are the generation settings of the summarization pipeline.
type SummarizationParameters struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

// SummarizationRequest is the payload sent to a summarization model.
type SummarizationRequest struct {
	Inputs     string                  `json:"inputs"`
	Parameters SummarizationParameters `json:"parameters"`
	Options    Options                 `json:"options"`
}

// SummarizationResult is one generated summary.
type SummarizationResult struct {
	SummaryText string `json:"summary_text"`
}

// FeatureExtractionRequest asks a sentence embedding model for vectors.
type FeatureExtractionRequest struct {
	Inputs  []string `json:"inputs"`
	Options Options  `json:"options"`
}

// StatusError is returned for non 2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("huggingface request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// IsUnavailable reports whether the model is missing or still loading.
func IsUnavailable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusServiceUnavailable || statusErr.StatusCode == http.StatusNotFound
	}
	return false
}

// Client performs HTTP requests to the Hugging Face inference API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client. The token may be empty for self hosted endpoints.
func NewClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid huggingface base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		token:   strings.TrimSpace(token),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Summarize runs a summarization model.
func (c *Client) Summarize(ctx context.Context, model string, req SummarizationRequest) ([]SummarizationResult, error) {
	body, err := c.doRequest(ctx, model, req)
	if err != nil {
		return nil, err
	}
	var out []SummarizationResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode summarization: %w", err)
	}
	return out, nil
}

// FeatureExtraction returns one vector per input. Token level outputs are mean pooled.
func (c *Client) FeatureExtraction(ctx context.Context, model string, req FeatureExtractionRequest) ([][]float32, error) {
	body, err := c.doRequest(ctx, model, req)
	if err != nil {
		return nil, err
	}
	var sentences [][]float32
	if err := json.Unmarshal(body, &sentences); err == nil {
		return sentences, nil
	}
	var tokens [][][]float32
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("decode feature extraction: %w", err)
	}
	out := make([][]float32, len(tokens))
	for i, vectors := range tokens {
		out[i] = meanPool(vectors)
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, model string, payload any) ([]byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, model, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request huggingface model %s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) newHTTPRequest(ctx context.Context, model string, payload any) (*http.Request, error) {
	model = strings.Trim(strings.TrimSpace(model), "/")
	if model == "" {
		return nil, errors.New("huggingface model cannot be empty")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode huggingface request: %w", err)
	}
	endpoint := c.baseURL + "/models/" + model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build huggingface request: %w", err)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func meanPool(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float32, len(vectors[0]))
	for _, vec := range vectors {
		for i := 0; i < len(out) && i < len(vec); i++ {
			out[i] += vec[i]
		}
	}
	for i := range out {
		out[i] /= float32(len(vectors))
	}
	return out
}
