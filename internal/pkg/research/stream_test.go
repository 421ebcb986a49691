package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Config{
		Research: config.ResearchConfig{
			APIURL:      baseURL,
			APIKey:      "test-key",
			Interaction: "ResearchV2",
			Timeout:     5 * time.Second,
		},
	})
}

func TestOpenStreamDeliversAnswerAndComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprintf(w, "data: {\"type\":\"answer\",\"message\":\"hello\"}\n\n")
		flusher.Flush()
		fmt.Fprintf(w, "data: {\"type\":\"complete\"}\n\n")
		flusher.Flush()
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	events := make(chan StreamEvent, 4)
	done := make(chan struct{})
	errs := make(chan error, 1)

	c.OpenStream(context.Background(), "wf-1", "run-1", StreamHandlers{
		OnEvent:    func(ev StreamEvent) { events <- ev },
		OnComplete: func() { close(done) },
		OnError:    func(err error) { errs <- err },
	})

	select {
	case ev := <-events:
		if ev.Type != EventAnswer || ev.Message != "hello" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for answer event")
	}

	select {
	case <-done:
	case err := <-errs:
		t.Fatalf("unexpected stream error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for completion")
	}
}

func TestOpenStreamErrorEventIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "data: {\"type\":\"error\",\"message\":\"boom\"}\n\n")
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	completed := make(chan struct{}, 1)
	errs := make(chan error, 1)

	c.OpenStream(context.Background(), "wf-1", "run-1", StreamHandlers{
		OnComplete: func() { completed <- struct{}{} },
		OnError:    func(err error) { errs <- err },
	})

	select {
	case <-errs:
	case <-completed:
		t.Fatalf("error event must not complete the stream")
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for error")
	}
}

func TestOpenStreamRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	errs := make(chan error, 1)
	c.OpenStream(context.Background(), "wf-1", "run-1", StreamHandlers{
		OnError: func(err error) { errs <- err },
	})

	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for rejection error")
	}
}

func TestOpenStreamCancelledDeliversNothing(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprintf(w, "data: {\"type\":\"answer\",\"message\":\"first\"}\n\n")
		flusher.Flush()
		<-release
	}))
	defer server.Close()
	defer close(release)

	c := newTestClient(server.URL)
	ctx, cancel := context.WithCancel(context.Background())

	events := make(chan StreamEvent, 4)
	terminal := make(chan string, 2)

	c.OpenStream(ctx, "wf-1", "run-1", StreamHandlers{
		OnEvent:    func(ev StreamEvent) { events <- ev },
		OnComplete: func() { terminal <- "complete" },
		OnError:    func(err error) { terminal <- "error" },
	})

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for first event")
	}

	cancel()

	// 取消后不允许再有任何回调
	select {
	case ev := <-events:
		t.Fatalf("unexpected event after cancel: %+v", ev)
	case kind := <-terminal:
		t.Fatalf("unexpected terminal callback after cancel: %s", kind)
	case <-time.After(200 * time.Millisecond):
	}
}
