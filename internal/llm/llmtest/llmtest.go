// Package llmtest provides llm.Stream implementations for tests.
package llmtest

import "github.com/daaffalbari/portfolio/internal/llm"

var _ llm.Stream = (*SliceStream)(nil)

// SliceStream replays fixed deltas, optionally ending with err.
type SliceStream struct {
	deltas []string
	err    error
	pos    int
	cur    string
	closed bool
}

// NewSliceStream returns a Stream yielding deltas and then ending with err.
func NewSliceStream(deltas []string, err error) *SliceStream {
	return &SliceStream{deltas: deltas, err: err}
}

func (s *SliceStream) Next() bool {
	if s.closed || s.pos >= len(s.deltas) {
		return false
	}
	s.cur = s.deltas[s.pos]
	s.pos++
	return true
}

func (s *SliceStream) Delta() string { return s.cur }

func (s *SliceStream) Err() error {
	if s.pos >= len(s.deltas) {
		return s.err
	}
	return nil
}

func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *SliceStream) Closed() bool { return s.closed }
