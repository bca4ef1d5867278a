// Package sse implements the event-stream framing shared by the chat gateway,
// its upstream client and the stream consumer.
//
// Frames are single data lines followed by a blank line:
//
//	data: {"content":"Hel"}
//
//	data: [DONE]
//
package sse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	// Prefix starts every data line.
	Prefix = "data: "

	// Done is the terminal sentinel payload.
	Done = "[DONE]"

	// ContentType is the media type of a frame stream.
	ContentType = "text/event-stream"
)

// Frame is the payload of a content delta.
type Frame struct {
	Content string `json:"content"`
}

// EncodeDelta returns the complete wire form of one content frame.
func EncodeDelta(content string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Prefix)
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Frame{Content: content}); err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	// Encode terminates with a single newline; a frame needs a blank line too.
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DoneFrame returns the wire form of the terminal sentinel.
func DoneFrame() []byte {
	return []byte(Prefix + Done + "\n\n")
}

// ParseDataLine extracts the payload of a single data line. Lines without the
// data prefix report ok=false.
func ParseDataLine(line string) (payload string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, Prefix) {
		return "", false
	}
	return line[len(Prefix):], true
}

// DecodeFrame parses a content payload.
func DecodeFrame(payload string) (Frame, error) {
	var f Frame
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return Frame{}, fmt.Errorf("decoding frame: %w", err)
	}
	return f, nil
}

// Writer emits frames and flushes after each one so the peer sees every
// delta as soon as it is written.
type Writer struct {
	w     io.Writer
	flush func() error
	n     int
}

// NewWriter wraps w. flush may be nil.
func NewWriter(w io.Writer, flush func() error) *Writer {
	return &Writer{w: w, flush: flush}
}

// WriteDelta writes one content frame.
func (w *Writer) WriteDelta(content string) error {
	frame, err := EncodeDelta(content)
	if err != nil {
		return err
	}
	return w.write(frame)
}

// WriteDone writes the terminal sentinel.
func (w *Writer) WriteDone() error {
	return w.write(DoneFrame())
}

// Frames reports how many frames have been written, sentinel included.
func (w *Writer) Frames() int {
	return w.n
}

func (w *Writer) write(frame []byte) error {
	if _, err := w.w.Write(frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	w.n++
	if w.flush != nil {
		if err := w.flush(); err != nil {
			return fmt.Errorf("flushing frame: %w", err)
		}
	}
	return nil
}

// Reader parses Server-Sent Events from a stream, joining multi-line data
// fields and ignoring comments, ids and retry hints.
type Reader struct {
	reader *bufio.Reader
}

// NewReader creates a new SSE reader from an io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// ReadEvent reads the next event and returns its event type and data.
// Returns io.EOF when the stream ends.
func (s *Reader) ReadEvent() (string, []byte, error) {
	var eventType string
	var dataLines [][]byte

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// A final event without its blank line still counts.
				line = bytes.TrimRight(line, "\r\n")
				if bytes.HasPrefix(line, []byte("data:")) {
					dataLines = append(dataLines, trimField(line[5:]))
				}
				if len(dataLines) > 0 {
					return eventType, bytes.Join(dataLines, []byte("\n")), nil
				}
				return "", nil, io.EOF
			}
			return "", nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return eventType, bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		switch {
		case bytes.HasPrefix(line, []byte("event:")):
			eventType = string(bytes.TrimSpace(line[6:]))
		case bytes.HasPrefix(line, []byte("data:")):
			dataLines = append(dataLines, trimField(line[5:]))
		}
	}
}

// trimField drops the single optional space after a field colon.
func trimField(v []byte) []byte {
	if len(v) > 0 && v[0] == ' ' {
		return v[1:]
	}
	return v
}
