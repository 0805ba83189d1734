package sse

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/speechkit/logger"
)

// KeepAlive is the interval between comment lines on idle streams. It
// stays below common proxy idle timeouts.
var KeepAlive = 30 * time.Second

// Serve subscribes to topic and streams events to w until the request
// ends or the hub closes.
func Serve(hub *Hub, w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	client, err := hub.Subscribe(topic)
	if err != nil {
		status := http.StatusBadRequest
		if err == ErrClosed {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}
	defer hub.Unsubscribe(client)

	// Streams outlive the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		hub.log.Debug("could not clear write deadline", logger.Fields(logger.FieldError, err.Error()))
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	hello := Event{Type: EventConnected, Data: ConnectedData{ClientID: client.ID(), Topic: topic}}
	if _, err := hello.WriteTo(w); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-client.Events():
			if !ok {
				return
			}
			if _, err := e.WriteTo(w); err != nil {
				hub.log.Debug("event write failed", logger.Fields("client_id", client.ID(), logger.FieldError, err.Error()))
				return
			}
			flusher.Flush()
		case now := <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keepalive %d\n\n", now.Unix()); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
