// Package sse reads Server-Sent Events streams, as produced by the live
// recognition gateway.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// maxEventSize bounds a single data line; recognition payloads carry full
// phrase JSON and exceed bufio's 64KB default.
const maxEventSize = 1 << 20

// Event is a single server-sent event.
type Event struct {
	// Event is the "event:" field; empty for data-only events.
	Event string
	// Data joins multi-line "data:" fields with newlines.
	Data string
	ID   string
}

// Reader reads server-sent events from a stream.
type Reader interface {
	// Next returns the next event, or io.EOF when the stream ends.
	Next() (*Event, error)
	Close() error
}

type reader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
}

// NewReader creates an SSE reader over body.
func NewReader(body io.ReadCloser) Reader {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	return &reader{scanner: sc, body: body}
}

func (r *reader) Next() (*Event, error) {
	var ev Event
	var data []string
	var seen bool

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			if seen {
				ev.Data = strings.Join(data, "\n")
				return &ev, nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "data":
			data = append(data, value)
			seen = true
		case "event":
			ev.Event = value
			seen = true
		case "id":
			ev.ID = value
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if seen {
		ev.Data = strings.Join(data, "\n")
		return &ev, nil
	}
	return nil, io.EOF
}

func (r *reader) Close() error {
	return r.body.Close()
}
