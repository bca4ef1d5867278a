package sse

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDelta(t *testing.T) {
	frame, err := EncodeDelta("Hel")
	require.NoError(t, err)
	assert.Equal(t, "data: {\"content\":\"Hel\"}\n\n", string(frame))
}

func TestEncodeDelta_KeepsMarkupUnescaped(t *testing.T) {
	frame, err := EncodeDelta("<b>&\"quote\"\n")
	require.NoError(t, err)
	assert.Equal(t, "data: {\"content\":\"<b>&\\\"quote\\\"\\n\"}\n\n", string(frame))

	payload, ok := ParseDataLine(strings.SplitN(string(frame), "\n", 2)[0])
	require.True(t, ok)
	f, err := DecodeFrame(payload)
	require.NoError(t, err)
	assert.Equal(t, "<b>&\"quote\"\n", f.Content)
}

func TestWriter_FramesSplitOnNewline(t *testing.T) {
	var buf bytes.Buffer
	flushes := 0
	w := NewWriter(&buf, func() error { flushes++; return nil })

	require.NoError(t, w.WriteDelta("Hel"))
	require.NoError(t, w.WriteDelta("lo"))
	require.NoError(t, w.WriteDone())

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, []string{
		`data: {"content":"Hel"}`, "",
		`data: {"content":"lo"}`, "",
		"data: [DONE]", "",
		"",
	}, lines)
	assert.Equal(t, 3, flushes)
	assert.Equal(t, 3, w.Frames())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriter_PropagatesWriteError(t *testing.T) {
	w := NewWriter(failingWriter{}, nil)
	err := w.WriteDelta("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 0, w.Frames())
}

func TestParseDataLine(t *testing.T) {
	payload, ok := ParseDataLine("data: [DONE]\r\n")
	assert.True(t, ok)
	assert.Equal(t, Done, payload)

	_, ok = ParseDataLine(": keep-alive")
	assert.False(t, ok)

	_, ok = ParseDataLine("")
	assert.False(t, ok)
}

func TestDecodeFrame_Malformed(t *testing.T) {
	_, err := DecodeFrame("{not json")
	assert.Error(t, err)
}

func TestReader_ReadEvent(t *testing.T) {
	stream := ": OPENROUTER PROCESSING\n\n" +
		"data: {\"a\":1}\n\n" +
		"event: message\n" +
		"data: line1\n" +
		"data:line2\n\n" +
		"id: 7\nretry: 100\n\n" +
		"data: [DONE]"

	r := NewReader(strings.NewReader(stream))

	_, data, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	ev, data, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "message", ev)
	assert.Equal(t, "line1\nline2", string(data))

	_, data, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, Done, string(data))

	_, _, err = r.ReadEvent()
	assert.Equal(t, io.EOF, err)
}
