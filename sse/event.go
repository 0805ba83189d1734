package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// EventConnected is the first event of every stream.
const EventConnected = "connected"

// Event is one server-sent event. Data is encoded as JSON.
type Event struct {
	Type string
	Data any
}

// ConnectedData is the payload of the connected event.
type ConnectedData struct {
	ClientID string `json:"clientId"`
	Topic    string `json:"topic"`
}

// WriteTo writes e in the text/event-stream format.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return 0, fmt.Errorf("sse: encode %s event: %w", e.Type, err)
	}
	var b strings.Builder
	if e.Type != "" {
		b.WriteString("event: ")
		b.WriteString(e.Type)
		b.WriteByte('\n')
	}
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
