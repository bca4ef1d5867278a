// Package llm defines the provider-agnostic streaming completion capability
// the chat gateway depends on.
package llm

import (
	"context"
	"errors"
)

// Roles understood by completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotConfigured indicates the provider has no credential.
var ErrNotConfigured = errors.New("completion provider API key not configured")

// Message is one role-tagged turn sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one streamed completion.
type Request struct {
	Model    string
	Messages []Message
}

// Stream is a finite, non-restartable sequence of text deltas.
//
// Next advances to the next delta and reports whether one is available.
// After Next returns false, Err reports why the sequence ended (nil on a
// clean end). Close releases the underlying connection and is safe to call
// more than once.
type Stream interface {
	Next() bool
	Delta() string
	Err() error
	Close() error
}

// CompletionProvider is any upstream able to stream a chat completion.
type CompletionProvider interface {
	StreamChat(ctx context.Context, req Request) (Stream, error)
}
