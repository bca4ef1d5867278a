// Package chat implements the prompt gateway: it grounds the caller's
// conversation in the knowledge base and relays the upstream completion as
// an event stream.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/daaffalbari/portfolio/internal/api"
	"github.com/daaffalbari/portfolio/internal/knowledge"
	"github.com/daaffalbari/portfolio/internal/llm"
	"github.com/daaffalbari/portfolio/internal/metrics"
	mw "github.com/daaffalbari/portfolio/internal/middleware"
	inats "github.com/daaffalbari/portfolio/internal/nats"
	"github.com/daaffalbari/portfolio/internal/sse"
)

// Stream outcomes, used for metrics and events.
const (
	OutcomeComplete  = "complete"
	OutcomeTruncated = "truncated"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// EventPublisher receives one event per terminated stream.
type EventPublisher interface {
	PublishChatEvent(ctx context.Context, event inats.ChatEvent) error
}

// Handler serves POST /api/chat.
type Handler struct {
	provider llm.CompletionProvider
	base     knowledge.Base
	model    string
	maxTurns int
	events   EventPublisher
	validate *validator.Validate
}

type Option func(*Handler)

func WithModel(model string) Option {
	return func(h *Handler) { h.model = model }
}

// WithKnowledge replaces the knowledge base the system prompt is built from.
func WithKnowledge(b knowledge.Base) Option {
	return func(h *Handler) { h.base = b }
}

// WithMaxHistoryTurns forwards only the newest n caller turns. Zero or less
// forwards everything.
func WithMaxHistoryTurns(n int) Option {
	return func(h *Handler) { h.maxTurns = n }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(h *Handler) { h.events = p }
}

// NewHandler creates a new chat handler.
func NewHandler(provider llm.CompletionProvider, opts ...Option) *Handler {
	h := &Handler{
		provider: provider,
		base:     knowledge.Default,
		model:    "openai/gpt-4o-mini",
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// streamResult summarizes one request for metrics, logs and events.
type streamResult struct {
	outcome string
	kind    string
	turns   int
	frames  int
}

// Stream validates the conversation, opens the upstream completion and
// relays each delta as a frame, ending with the done sentinel. Failures
// before the first frame produce a JSON error; later failures end the
// stream without the sentinel.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := streamResult{}
	defer func() { h.finish(r, start, res) }()

	turns, err := decodeTurns(r.Body, h.validate)
	if err != nil {
		res.outcome, res.kind = OutcomeRejected, KindInvalidRequest.String()
		api.HandleError(w, err)
		return
	}
	res.turns = len(turns)

	stream, err := h.provider.StreamChat(r.Context(), llm.Request{
		Model:    h.model,
		Messages: h.assemble(turns),
	})
	if err != nil {
		res.outcome, res.kind = OutcomeFailed, h.fail(w, r, err)
		return
	}
	defer stream.Close()

	// Pull the first delta before committing so an early upstream failure
	// still gets a structured response.
	first, ok := nextDelta(stream)
	if !ok {
		if err := stream.Err(); err != nil {
			res.outcome, res.kind = OutcomeFailed, h.fail(w, r, err)
			return
		}
	} else {
		metrics.ChatFirstDeltaSeconds.Observe(time.Since(start).Seconds())
	}

	rc := http.NewResponseController(w)
	// The server write timeout must not cut a long completion short.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		slog.Warn("clearing write deadline", "error", err)
	}

	hdr := w.Header()
	hdr.Set("Content-Type", sse.ContentType)
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	out := sse.NewWriter(w, func() error {
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	})
	defer func() { res.frames = out.Frames() }()

	for ok {
		if err := out.WriteDelta(first); err != nil {
			res.outcome = OutcomeTruncated
			h.truncated(r, err)
			return
		}
		metrics.ChatFramesRelayedTotal.Inc()
		first, ok = nextDelta(stream)
	}

	if err := stream.Err(); err != nil {
		res.outcome, res.kind = OutcomeTruncated, Classify(err).String()
		metrics.ChatUpstreamErrorsTotal.WithLabelValues(res.kind).Inc()
		h.truncated(r, err)
		return
	}

	if err := out.WriteDone(); err != nil {
		res.outcome = OutcomeTruncated
		h.truncated(r, err)
		return
	}
	res.outcome = OutcomeComplete
}

// assemble prepends the grounding prompt and applies the history bound.
func (h *Handler) assemble(turns []Turn) []llm.Message {
	if h.maxTurns > 0 && len(turns) > h.maxTurns {
		turns = turns[len(turns)-h.maxTurns:]
	}
	msgs := make([]llm.Message, 0, len(turns)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: knowledge.BuildSystemPrompt(h.base)})
	for _, t := range turns {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return msgs
}

// nextDelta advances past empty deltas.
func nextDelta(s llm.Stream) (string, bool) {
	for s.Next() {
		if d := s.Delta(); d != "" {
			return d, true
		}
	}
	return "", false
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) string {
	kind := Classify(err)
	metrics.ChatUpstreamErrorsTotal.WithLabelValues(kind.String()).Inc()
	slog.Error("chat request failed",
		"error", err,
		"kind", kind.String(),
		"request_id", mw.GetRequestID(r.Context()),
	)
	api.HandleError(w, toAppError(err, kind))
	return kind.String()
}

func (h *Handler) truncated(r *http.Request, err error) {
	slog.Warn("chat stream truncated",
		"error", err,
		"request_id", mw.GetRequestID(r.Context()),
	)
}

func (h *Handler) finish(r *http.Request, start time.Time, res streamResult) {
	metrics.ChatStreamsTotal.WithLabelValues(res.outcome).Inc()
	if h.events == nil {
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	ev := inats.ChatEvent{
		ID:         id.String(),
		RequestID:  mw.GetRequestID(r.Context()),
		Outcome:    res.outcome,
		ErrorKind:  res.kind,
		Model:      h.model,
		Turns:      res.turns,
		Frames:     res.frames,
		DurationMS: time.Since(start).Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
	// The request context may already be cancelled by a departed client.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
	defer cancel()
	if err := h.events.PublishChatEvent(ctx, ev); err != nil {
		slog.Warn("publishing chat event", "error", err, "request_id", ev.RequestID)
	}
}
