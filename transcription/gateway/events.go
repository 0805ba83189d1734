package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/speechkit/httpclient/sse"
	"github.com/kbukum/speechkit/transcription"
)

// Gateway event names.
const (
	eventSessionStarted = "session_started"
	eventTranscribing   = "transcribing"
	eventTranscribed    = "transcribed"
	eventCanceled       = "canceled"
	eventSessionStopped = "session_stopped"
)

type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type phrasePayload struct {
	Reason    string `json:"reason"`
	SpeakerID string `json:"speakerId"`
	Text      string `json:"text"`
	Offset    int64  `json:"offset"`
}

type cancelPayload struct {
	Reason       string `json:"reason"`
	ErrorCode    string `json:"errorCode"`
	ErrorDetails string `json:"errorDetails"`
}

// decode maps a gateway event to a session event. Unknown event names
// yield nil.
func decode(msg *sse.Event) (transcription.Event, error) {
	switch msg.Event {
	case eventSessionStarted, eventSessionStopped:
		var p sessionPayload
		if err := unmarshal(msg.Data, &p); err != nil {
			return nil, err
		}
		if msg.Event == eventSessionStarted {
			return transcription.SessionStarted{SessionID: p.SessionID}, nil
		}
		return transcription.SessionStopped{SessionID: p.SessionID}, nil
	case eventTranscribing:
		var p phrasePayload
		if err := unmarshal(msg.Data, &p); err != nil {
			return nil, err
		}
		return transcription.Transcribing{Text: p.Text}, nil
	case eventTranscribed:
		var p phrasePayload
		if err := unmarshal(msg.Data, &p); err != nil {
			return nil, err
		}
		return transcription.Transcribed{
			Speaker:     p.SpeakerID,
			Text:        p.Text,
			OffsetTicks: p.Offset,
			NoMatch:     p.Reason == "NoMatch",
		}, nil
	case eventCanceled:
		var p cancelPayload
		if err := unmarshal(msg.Data, &p); err != nil {
			return nil, err
		}
		return transcription.Canceled{
			Reason:  transcription.CancelReason(p.Reason),
			Code:    transcription.ErrorCode(p.ErrorCode),
			Details: p.ErrorDetails,
		}, nil
	default:
		return nil, nil
	}
}

func unmarshal(data string, v any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
