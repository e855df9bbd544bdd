// Package capture pulls live chat completions from the reference and
// candidate endpoints and stores them as sample files for later comparison.
package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/routerlab/conformance-go/internal/ratelimit"
)

const completionsPath = "/v1/chat/completions"

// Message is one chat turn in a capture request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body sent to both endpoints.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream,omitempty"`
}

// Client captures responses from one chat completions endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
}

// New creates a capture client for the given base URL, pacing requests at
// rps requests per second.
func New(baseURL string, rps float64) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   120 * time.Second,
		},
		limiter: ratelimit.NewEndpointLimiter(rps),
	}
}

// NewWithHTTPClient creates a capture client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    ratelimit.NewEndpointLimiter(100),
	}
}

// Completion requests one non-streaming completion and returns the raw
// response body. The body must be valid JSON; anything else is an error,
// not a sample.
func (c *Client) Completion(ctx context.Context, model, prompt string) (string, error) {
	body, err := c.post(ctx, ChatRequest{
		Model:    model,
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(body)) {
		return "", fmt.Errorf("capture: %s returned a non-JSON completion body", c.baseURL)
	}
	return body, nil
}

// StreamCompletion requests one streaming completion and returns the raw
// event-stream text, untouched. Frame decoding happens at analysis time so
// that malformed frames are preserved in the sample.
func (c *Client) StreamCompletion(ctx context.Context, model, prompt string) (string, error) {
	return c.post(ctx, ChatRequest{
		Model:    model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   true,
	})
}

func (c *Client) post(ctx context.Context, req ChatRequest) (string, error) {
	if err := c.limiter.Wait(ctx, completionsPath); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("capture: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("capture: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("capture: request %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("capture: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("capture: %s returned status %d", c.baseURL, resp.StatusCode)
	}
	return string(data), nil
}
