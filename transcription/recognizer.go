package transcription

import (
	"context"
	"io"
)

// SupportedLocale is the only locale live recognition accepts.
const SupportedLocale = "en-US"

// Request describes one audio file to recognize.
type Request struct {
	Audio    io.Reader
	FileName string
	// Locale is informational; sessions always recognize SupportedLocale.
	Locale string
	// OnEvent, when set, observes every event in arrival order.
	OnEvent func(Event)
}

// Recognizer starts a recognition session and streams its events. The
// channel is closed when the session ends or ctx is done. Implementations
// report transport failures as a Canceled event where they can, so the
// session can describe them.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, audio io.Reader, fileName, locale string) (<-chan Event, error)
}
