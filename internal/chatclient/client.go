// Package chatclient is the consuming side of the chat stream: it keeps the
// conversation, sends it to the gateway, applies deltas as they arrive and
// persists every change.
package chatclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/daaffalbari/portfolio/internal/sse"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// FallbackMessage replaces an assistant turn that received nothing.
	FallbackMessage = "Sorry, I encountered an error. Please try again later."

	saveTimeout = 2 * time.Second
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is still streaming")
)

var suggestions = []string{
	"Who is Daffa?",
	"What are his skills?",
	"Tell me about his projects",
	"How can I contact him?",
}

// Turn is one entry of the conversation.
type Turn struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Outcome reports how a Send ended.
type Outcome int

const (
	// OutcomeDropped means the message was not sent at all.
	OutcomeDropped Outcome = iota
	// OutcomeComplete means the done sentinel arrived.
	OutcomeComplete
	// OutcomeTruncated means the body ended without the sentinel.
	OutcomeTruncated
	// OutcomeFailed means no stream was obtained.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeTruncated:
		return "truncated"
	case OutcomeFailed:
		return "failed"
	default:
		return "dropped"
	}
}

type wireTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Messages []wireTurn `json:"messages"`
}

// Client is one chat widget instance.
type Client struct {
	endpoint   string
	httpClient *http.Client
	store      *Store
	onChange   func([]Turn)

	inFlight atomic.Bool

	mu    sync.Mutex
	turns []Turn
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// OnChange registers fn to receive a copy of the conversation after every
// change.
func OnChange(fn func([]Turn)) Option {
	return func(c *Client) { c.onChange = fn }
}

// New creates a client posting to endpoint and restores the conversation
// held by store.
func New(ctx context.Context, endpoint string, store *Store, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}

	turns, err := store.Load(ctx)
	if err != nil {
		slog.Warn("starting with empty conversation", "error", err)
	}
	c.turns = turns
	return c
}

// Turns returns a copy of the conversation.
func (c *Client) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.turns...)
}

// Busy reports whether a reply is streaming.
func (c *Client) Busy() bool {
	return c.inFlight.Load()
}

// Suggestions returns the prompt shortcuts offered on an empty conversation.
func (c *Client) Suggestions() []string {
	return append([]string(nil), suggestions...)
}

// Send appends text as a user turn and streams the reply into a new
// assistant turn. Only one Send runs at a time; a concurrent call returns
// ErrBusy immediately.
func (c *Client) Send(ctx context.Context, text string) (Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return OutcomeDropped, ErrEmptyMessage
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return OutcomeDropped, ErrBusy
	}
	defer c.inFlight.Store(false)

	history := c.appendTurn(ctx, Turn{ID: newID(), Role: RoleUser, Content: text})
	replyID := newID()
	c.appendTurn(ctx, Turn{ID: replyID, Role: RoleAssistant})

	body, err := c.open(ctx, history)
	if err != nil {
		slog.Error("chat request failed", "error", err)
		c.setContent(ctx, replyID, FallbackMessage)
		return OutcomeFailed, err
	}
	defer body.Close()

	return c.consume(ctx, body, replyID)
}

// Clear empties the conversation and deletes the stored copy.
func (c *Client) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.turns = nil
	err := c.store.Clear(ctx)
	c.mu.Unlock()

	c.notify(nil)
	return err
}

func (c *Client) open(ctx context.Context, history []Turn) (io.ReadCloser, error) {
	req := wireRequest{Messages: make([]wireTurn, 0, len(history))}
	for _, t := range history {
		req.Messages = append(req.Messages, wireTurn{Role: t.Role, Content: t.Content})
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", sse.ContentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting chat: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("chat endpoint returned %d", resp.StatusCode)
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, errors.New("chat endpoint returned no body")
	}
	return resp.Body, nil
}

// consume applies frames line by line. Unparseable frames are skipped;
// anything after the done sentinel is drained and ignored.
func (c *Client) consume(ctx context.Context, body io.Reader, replyID string) (Outcome, error) {
	r := bufio.NewReader(body)
	var content strings.Builder
	done := false
	var readErr error

	for {
		line, err := r.ReadString('\n')
		if !done && line != "" {
			if payload, ok := sse.ParseDataLine(line); ok {
				if payload == sse.Done {
					done = true
				} else if f, err := sse.DecodeFrame(payload); err == nil && f.Content != "" {
					content.WriteString(f.Content)
					c.setContent(ctx, replyID, content.String())
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = fmt.Errorf("reading stream: %w", err)
			}
			break
		}
	}

	if done {
		return OutcomeComplete, nil
	}
	if readErr != nil {
		slog.Warn("chat stream broke", "error", readErr)
	}
	if content.Len() == 0 {
		c.setContent(ctx, replyID, FallbackMessage)
	}
	return OutcomeTruncated, readErr
}

// appendTurn adds t and returns the conversation including it.
func (c *Client) appendTurn(ctx context.Context, t Turn) []Turn {
	c.mu.Lock()
	c.turns = append(c.turns, t)
	snap := append([]Turn(nil), c.turns...)
	c.persist(ctx, snap)
	c.mu.Unlock()

	c.notify(snap)
	return snap
}

// setContent overwrites the content of turn id. A turn removed by Clear is
// left alone.
func (c *Client) setContent(ctx context.Context, id, content string) {
	c.mu.Lock()
	idx := -1
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.turns[idx].Content = content
	snap := append([]Turn(nil), c.turns...)
	c.persist(ctx, snap)
	c.mu.Unlock()

	c.notify(snap)
}

// persist must be called with mu held so saves land in mutation order.
// Cancelling the Send context does not cancel the save: the final fallback
// substitution happens exactly when the caller gives up.
func (c *Client) persist(ctx context.Context, snap []Turn) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := c.store.Save(ctx, snap); err != nil {
		slog.Warn("persisting conversation", "error", err)
	}
}

func (c *Client) notify(snap []Turn) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
