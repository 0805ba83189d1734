package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/transcription"
)

func sseServer(t *testing.T, status int, lines ...string) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		got = *r.Clone(context.Background())
		f, hdr, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("audio part missing: %v", err)
			return
		}
		data, _ := io.ReadAll(f)
		got.Header.Set("X-Test-Audio", hdr.Filename+":"+string(data))

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("denied"))
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, l := range lines {
			_, _ = fmt.Fprint(w, l)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func drain(t *testing.T, ch <-chan transcription.Event) []transcription.Event {
	t.Helper()
	var out []transcription.Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("event channel not closed")
		}
	}
}

func TestRecognize_StreamsEvents(t *testing.T) {
	srv, got := sseServer(t, http.StatusOK,
		"event: session_started\ndata: {\"sessionId\":\"abc\"}\n\n",
		"event: transcribing\ndata: {\"text\":\"hel\"}\n\n",
		"event: transcribed\ndata: {\"reason\":\"RecognizedSpeech\",\"speakerId\":\"Guest-1\",\"text\":\"hello\",\"offset\":1200000}\n\n",
		"event: transcribed\ndata: {\"reason\":\"NoMatch\"}\n\n",
		"event: heartbeat\ndata: {}\n\n",
		"event: transcribed\ndata: {not json\n\n",
		"event: canceled\ndata: {\"reason\":\"EndOfStream\"}\n\n",
		"event: session_stopped\ndata: {\"sessionId\":\"abc\"}\n\n",
	)

	rec, err := New(Config{URL: srv.URL, Key: "k", Region: "westeurope"}, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ch, err := rec.Recognize(context.Background(), strings.NewReader("RIFF"), "call.wav", "en-US")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	events := drain(t, ch)

	want := []transcription.Event{
		transcription.SessionStarted{SessionID: "abc"},
		transcription.Transcribing{Text: "hel"},
		transcription.Transcribed{Speaker: "Guest-1", Text: "hello", OffsetTicks: 1_200_000},
		transcription.Transcribed{NoMatch: true},
		transcription.Canceled{Reason: transcription.ReasonEndOfStream},
		transcription.SessionStopped{SessionID: "abc"},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events %+v, want %d", len(events), events, len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}

	if got.Header.Get(keyHeader) != "k" {
		t.Errorf("key header = %q", got.Header.Get(keyHeader))
	}
	if got.URL.Query().Get("locale") != "en-US" || got.URL.Query().Get("region") != "westeurope" {
		t.Errorf("query = %q", got.URL.RawQuery)
	}
	if got.Header.Get("X-Test-Audio") != "call.wav:RIFF" {
		t.Errorf("audio part = %q", got.Header.Get("X-Test-Audio"))
	}
}

func TestRecognize_FailureBecomesCancellation(t *testing.T) {
	tests := []struct {
		status int
		want   transcription.ErrorCode
	}{
		{http.StatusUnauthorized, transcription.CodeAuthenticationFailure},
		{http.StatusForbidden, transcription.CodeForbidden},
		{http.StatusBadRequest, transcription.CodeBadRequest},
		{http.StatusTooManyRequests, transcription.CodeTooManyRequests},
		{http.StatusServiceUnavailable, transcription.CodeServiceUnavailable},
		{http.StatusInternalServerError, transcription.CodeRuntimeError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := sseServer(t, tt.status)
			rec, err := New(Config{URL: srv.URL}, logger.Nop())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			ch, err := rec.Recognize(context.Background(), strings.NewReader("x"), "", "en-US")
			if err != nil {
				t.Fatalf("Recognize() error = %v", err)
			}
			events := drain(t, ch)
			if len(events) != 1 {
				t.Fatalf("events = %+v", events)
			}
			c, ok := events[0].(transcription.Canceled)
			if !ok || c.Reason != transcription.ReasonError || c.Code != tt.want {
				t.Errorf("event = %+v, want code %s", events[0], tt.want)
			}
			if c.Details != "denied" {
				t.Errorf("details = %q", c.Details)
			}
		})
	}
}

func TestRecognize_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec, err := New(Config{URL: url}, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ch, _ := rec.Recognize(context.Background(), strings.NewReader("x"), "a.wav", "en-US")
	events := drain(t, ch)
	if len(events) != 1 || events[0].(transcription.Canceled).Code != transcription.CodeConnectionFailure {
		t.Errorf("events = %+v", events)
	}
}

func TestSessionOverGateway(t *testing.T) {
	srv, _ := sseServer(t, http.StatusOK,
		"event: transcribed\ndata: {\"reason\":\"RecognizedSpeech\",\"speakerId\":\"Guest-1\",\"text\":\"good morning\",\"offset\":0}\n\n",
		"event: transcribed\ndata: {\"reason\":\"RecognizedSpeech\",\"speakerId\":\"Guest-2\",\"text\":\"hi\",\"offset\":15000000}\n\n",
		"event: canceled\ndata: {\"reason\":\"EndOfStream\"}\n\n",
	)
	rec, err := New(Config{URL: srv.URL}, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sess := transcription.NewSession(rec, transcription.Config{}, logger.Nop())
	res, err := sess.Run(context.Background(), transcription.Request{Audio: strings.NewReader("x"), FileName: "a.wav"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Segments) != 2 || res.Segments[0].DurationTicks != 15_000_000 {
		t.Errorf("segments = %+v", res.Segments)
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	rec, _ := New(Config{URL: srv.URL}, logger.Nop())
	if !rec.IsAvailable(context.Background()) {
		t.Error("gateway should be available")
	}
}
