package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultKey is the slot the conversation is kept under.
const DefaultKey = "abel_chat_history"

// Store persists a whole conversation as one JSON array in a KV slot.
type Store struct {
	kv  KV
	key string
}

func NewStore(kv KV, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// Load returns the stored conversation. An absent slot or a value that is
// not a JSON array of turns yields an empty conversation.
func (s *Store) Load(ctx context.Context) ([]Turn, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	var turns []Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		slog.Warn("discarding unreadable conversation", "key", s.key, "error", err)
		return nil, nil
	}
	return turns, nil
}

// Save overwrites the slot with turns.
func (s *Store) Save(ctx context.Context, turns []Turn) error {
	if turns == nil {
		turns = []Turn{}
	}
	raw, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encoding conversation: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	return nil
}

// Clear deletes the slot.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clearing conversation: %w", err)
	}
	return nil
}
