package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateway serves body with the event-stream content type and records the
// decoded request.
func gateway(t *testing.T, status int, body string) (*httptest.Server, *[]wireRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []wireRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		reqs = append(reqs, req)
		mu.Unlock()

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func newClient(t *testing.T, endpoint string, kv KV, opts ...Option) *Client {
	t.Helper()
	return New(context.Background(), endpoint, NewStore(kv, DefaultKey), opts...)
}

func TestSend_Complete(t *testing.T) {
	srv, reqs := gateway(t, http.StatusOK,
		"data: {\"content\":\"Hel\"}\n\ndata: {\"content\":\"lo\"}\n\ndata: [DONE]\n\n")

	var mu sync.Mutex
	var seen []string
	c := newClient(t, srv.URL, NewMemoryKV(), OnChange(func(turns []Turn) {
		mu.Lock()
		defer mu.Unlock()
		if n := len(turns); n > 0 {
			seen = append(seen, turns[n-1].Content)
		}
	}))

	outcome, err := c.Send(context.Background(), "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeComplete, outcome)

	turns := c.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "hi", turns[0].Content)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.Equal(t, "Hello", turns[1].Content)
	assert.NotEqual(t, turns[0].ID, turns[1].ID)

	// user turn, placeholder, then one change per delta
	assert.Equal(t, []string{"hi", "", "Hel", "Hello"}, seen)

	require.Len(t, *reqs, 1)
	assert.Equal(t, []wireTurn{{Role: RoleUser, Content: "hi"}}, (*reqs)[0].Messages)
	assert.False(t, c.Busy())
}

func TestSend_ResendsHistoryWithoutPlaceholder(t *testing.T) {
	srv, reqs := gateway(t, http.StatusOK, "data: {\"content\":\"ok\"}\n\ndata: [DONE]\n\n")
	c := newClient(t, srv.URL, NewMemoryKV())

	_, err := c.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = c.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, *reqs, 2)
	assert.Equal(t, []wireTurn{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "ok"},
		{Role: RoleUser, Content: "second"},
	}, (*reqs)[1].Messages)
}

func TestSend_MalformedFrameIsSkipped(t *testing.T) {
	clean, _ := gateway(t, http.StatusOK,
		"data: {\"content\":\"Hel\"}\n\ndata: {\"content\":\"lo\"}\n\ndata: [DONE]\n\n")
	dirty, _ := gateway(t, http.StatusOK,
		"data: {\"content\":\"Hel\"}\n\ndata: {\"content\":\n\ndata: {\"content\":\"lo\"}\n\ndata: [DONE]\n\n")

	a := newClient(t, clean.URL, NewMemoryKV())
	b := newClient(t, dirty.URL, NewMemoryKV())

	oa, err := a.Send(context.Background(), "hi")
	require.NoError(t, err)
	ob, err := b.Send(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, oa, ob)
	assert.Equal(t, a.Turns()[1].Content, b.Turns()[1].Content)
}

func TestSend_IgnoresFramesAfterDone(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK,
		"data: {\"content\":\"a\"}\n\ndata: [DONE]\n\ndata: {\"content\":\"b\"}\n\n")
	c := newClient(t, srv.URL, NewMemoryKV())

	outcome, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, OutcomeComplete, outcome)
	assert.Equal(t, "a", c.Turns()[1].Content)
}

func TestSend_Truncated(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, "data: {\"content\":\"par\"}\n\ndata: {\"content\":\"tial\"}\n\n")
	c := newClient(t, srv.URL, NewMemoryKV())

	outcome, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, OutcomeTruncated, outcome)
	assert.Equal(t, "partial", c.Turns()[1].Content)
	assert.False(t, c.Busy())
}

func TestSend_TruncatedWithoutContentGetsFallback(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, ": nothing\n\n")
	c := newClient(t, srv.URL, NewMemoryKV())

	outcome, _ := c.Send(context.Background(), "hi")
	assert.Equal(t, OutcomeTruncated, outcome)
	assert.Equal(t, FallbackMessage, c.Turns()[1].Content)
}

func TestSend_NonOKStatus(t *testing.T) {
	srv, _ := gateway(t, http.StatusInternalServerError, `{"error":"Failed to process chat request"}`)
	kv := NewMemoryKV()
	c := newClient(t, srv.URL, kv)

	outcome, err := c.Send(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)

	turns := c.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, FallbackMessage, turns[1].Content)
	assert.False(t, c.Busy())

	// The fallback is persisted too.
	stored, err := NewStore(kv, DefaultKey).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, turns, stored)
}

func TestSend_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newClient(t, url, NewMemoryKV())
	outcome, err := c.Send(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, FallbackMessage, c.Turns()[1].Content)
}

func TestSend_EmptyMessageIsDropped(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:0", NewMemoryKV())

	outcome, err := c.Send(context.Background(), " \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, OutcomeDropped, outcome)
	assert.Empty(t, c.Turns())
}

func TestSend_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-release
		fmt.Fprint(w, "data: {\"content\":\"done\"}\n\ndata: [DONE]\n\n")
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, NewMemoryKV())

	result := make(chan Outcome, 1)
	go func() {
		o, _ := c.Send(context.Background(), "first")
		result <- o
	}()

	require.Eventually(t, c.Busy, time.Second, 5*time.Millisecond)

	outcome, err := c.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, OutcomeDropped, outcome)

	close(release)
	assert.Equal(t, OutcomeComplete, <-result)
	assert.False(t, c.Busy())

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
	assert.Len(t, c.Turns(), 2)
}

func TestSend_GuardResetsAfterFailure(t *testing.T) {
	srv, _ := gateway(t, http.StatusBadGateway, "")
	c := newClient(t, srv.URL, NewMemoryKV())

	_, err := c.Send(context.Background(), "one")
	require.Error(t, err)
	assert.False(t, c.Busy())

	_, err = c.Send(context.Background(), "two")
	require.Error(t, err)
	assert.Len(t, c.Turns(), 4)
}

func TestNew_RestoresConversation(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, "data: {\"content\":\"Hello\"}\n\ndata: [DONE]\n\n")
	kv := NewMemoryKV()

	first := newClient(t, srv.URL, kv)
	_, err := first.Send(context.Background(), "hi")
	require.NoError(t, err)

	remounted := newClient(t, srv.URL, kv)
	assert.Equal(t, first.Turns(), remounted.Turns())
}

func TestClear(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, "data: {\"content\":\"Hello\"}\n\ndata: [DONE]\n\n")
	kv := NewMemoryKV()

	c := newClient(t, srv.URL, kv)
	_, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)

	require.NoError(t, c.Clear(context.Background()))
	assert.Empty(t, c.Turns())

	_, err = kv.Get(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	remounted := newClient(t, srv.URL, kv)
	assert.Empty(t, remounted.Turns())
}

type failingKV struct{ *MemoryKV }

func (failingKV) Set(context.Context, string, []byte) error {
	return fmt.Errorf("disk full")
}

func TestSend_SaveFailureDoesNotInterrupt(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, "data: {\"content\":\"Hello\"}\n\ndata: [DONE]\n\n")
	c := newClient(t, srv.URL, failingKV{NewMemoryKV()})

	outcome, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, OutcomeComplete, outcome)
	assert.Equal(t, "Hello", c.Turns()[1].Content)
}

func TestSuggestions(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:0", NewMemoryKV())
	s := c.Suggestions()
	assert.Equal(t, []string{
		"Who is Daffa?",
		"What are his skills?",
		"Tell me about his projects",
		"How can I contact him?",
	}, s)

	s[0] = "changed"
	assert.Equal(t, "Who is Daffa?", c.Suggestions()[0])
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "dropped", OutcomeDropped.String())
	assert.Equal(t, "complete", OutcomeComplete.String())
	assert.Equal(t, "truncated", OutcomeTruncated.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}
