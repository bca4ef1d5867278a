package nats

import (
	"time"
)

// Stream names.
const (
	StreamEvents = "PORTFOLIO_EVENTS"
)

// Subject constants.
const (
	SubjectEventsWildcard = "portfolio.events.>"
	SubjectChatEvent      = "portfolio.events.chat"
)

// ChatEvent is published once per terminated chat stream. It carries
// counters only, never conversation content.
type ChatEvent struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	Outcome    string    `json:"outcome"` // complete, truncated, rejected, failed
	ErrorKind  string    `json:"error_kind,omitempty"`
	Model      string    `json:"model"`
	Turns      int       `json:"turns"`
	Frames     int       `json:"frames"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
