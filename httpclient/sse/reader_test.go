package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestReader_SingleEvent(t *testing.T) {
	r := NewReader(body("data: hello world\n\n"))
	defer r.Close()

	ev, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Data != "hello world" {
		t.Errorf("got data %q", ev.Data)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReader_NamedEventsAndComments(t *testing.T) {
	stream := ": keep-alive\n" +
		"event: transcribed\nid: 7\ndata: {\"text\":\"hi\"}\n\n" +
		"event: session_stopped\n\n"
	r := NewReader(body(stream))

	ev, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Event != "transcribed" || ev.ID != "7" || ev.Data != `{"text":"hi"}` {
		t.Errorf("unexpected event %+v", ev)
	}

	ev, err = r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Event != "session_stopped" || ev.Data != "" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestReader_MultiLineData(t *testing.T) {
	r := NewReader(body("data: line1\ndata: line2\n\n"))
	ev, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Data != "line1\nline2" {
		t.Errorf("got %q", ev.Data)
	}
}

func TestReader_TrailingEventWithoutBlankLine(t *testing.T) {
	r := NewReader(body("data: last"))
	ev, err := r.Next()
	if err != nil || ev.Data != "last" {
		t.Errorf("got (%+v, %v)", ev, err)
	}
}

func TestReader_LargePayload(t *testing.T) {
	big := strings.Repeat("x", 200*1024)
	r := NewReader(body("data: " + big + "\n\n"))
	ev, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ev.Data) != len(big) {
		t.Errorf("expected %d bytes, got %d", len(big), len(ev.Data))
	}
}
