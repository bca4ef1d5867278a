// Package openrouter streams chat completions from the OpenRouter API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daaffalbari/portfolio/internal/llm"
	"github.com/daaffalbari/portfolio/internal/sse"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// maxErrorBody caps how much of a failed response is read.
	maxErrorBody = 64 * 1024
)

// APIError represents an error reported by the OpenRouter API, either as a
// non-2xx response or inside the event stream.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("openrouter error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("openrouter error (HTTP %d): %s", e.Status, e.Message)
}

// apiErrorResponse is the error envelope. code is a number on some routes
// and a string on others.
type apiErrorResponse struct {
	Error *struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
	} `json:"error"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	apiErrorResponse
}

// Client implements llm.CompletionProvider against OpenRouter.
type Client struct {
	apiKey     string
	baseURL    string
	siteURL    string
	siteName   string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithSiteURL sets the HTTP-Referer attribution header.
func WithSiteURL(u string) Option {
	return func(c *Client) { c.siteURL = u }
}

// WithSiteName sets the X-Title attribution header.
func WithSiteName(name string) Option {
	return func(c *Client) { c.siteName = name }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client. An empty apiKey yields a client whose every call
// fails with llm.ErrNotConfigured.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			// Streams are bounded by the request context, not a client timeout.
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          20,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 60 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// StreamChat opens a streamed completion. Errors reported before the first
// byte of the stream (transport failures and non-2xx statuses) are returned
// here; later failures surface through Stream.Err.
func (c *Client) StreamChat(ctx context.Context, r llm.Request) (llm.Stream, error) {
	if !c.IsConfigured() {
		return nil, llm.ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{Model: r.Model, Messages: r.Messages, Stream: true})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseError(resp.StatusCode, raw)
	}

	return &stream{body: resp.Body, reader: sse.NewReader(resp.Body), status: resp.StatusCode}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", sse.ContentType)
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.siteName != "" {
		req.Header.Set("X-Title", c.siteName)
	}
}

func parseError(status int, body []byte) error {
	var env apiErrorResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return &APIError{Code: rawCode(env.Error.Code), Message: env.Error.Message, Status: status}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Message: msg, Status: status}
}

func rawCode(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

// stream adapts an OpenRouter event stream to llm.Stream.
type stream struct {
	body   io.ReadCloser
	reader *sse.Reader
	status int
	cur    string
	err    error
	done   bool
}

func (s *stream) Next() bool {
	for !s.done {
		_, data, err := s.reader.ReadEvent()
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.err = fmt.Errorf("reading stream: %w", err)
			}
			return false
		}

		if string(data) == sse.Done {
			s.done = true
			return false
		}

		var chunk streamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			// Skip malformed chunks
			continue
		}
		if chunk.Error != nil && chunk.Error.Message != "" {
			s.done = true
			s.err = &APIError{Code: rawCode(chunk.Error.Code), Message: chunk.Error.Message, Status: s.status}
			return false
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.cur = chunk.Choices[0].Delta.Content
		return true
	}
	return false
}

func (s *stream) Delta() string { return s.cur }

func (s *stream) Err() error { return s.err }

func (s *stream) Close() error {
	s.done = true
	return s.body.Close()
}
