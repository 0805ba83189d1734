package transcription

import "fmt"

// Event is emitted by a Recognizer during a session.
type Event interface {
	isEvent()
}

// SessionStarted opens a session.
type SessionStarted struct {
	SessionID string
}

// Transcribing carries an intermediate hypothesis.
type Transcribing struct {
	Text string
}

// Transcribed carries a final phrase. NoMatch phrases had audio that could
// not be recognized and carry no text.
type Transcribed struct {
	Speaker     string
	Text        string
	OffsetTicks int64
	NoMatch     bool
}

// Canceled ends a session early, or normally when Reason is EndOfStream.
type Canceled struct {
	Reason  CancelReason
	Code    ErrorCode
	Details string
}

// SessionStopped closes a session.
type SessionStopped struct {
	SessionID string
}

func (SessionStarted) isEvent() {}
func (Transcribing) isEvent()   {}
func (Transcribed) isEvent()    {}
func (Canceled) isEvent()       {}
func (SessionStopped) isEvent() {}

// CancelReason says why a session was canceled.
type CancelReason string

const (
	ReasonError           CancelReason = "Error"
	ReasonEndOfStream     CancelReason = "EndOfStream"
	ReasonCancelledByUser CancelReason = "CancelledByUser"
)

// ErrorCode classifies a ReasonError cancellation.
type ErrorCode string

const (
	CodeAuthenticationFailure ErrorCode = "AuthenticationFailure"
	CodeBadRequest            ErrorCode = "BadRequest"
	CodeConnectionFailure     ErrorCode = "ConnectionFailure"
	CodeServiceTimeout        ErrorCode = "ServiceTimeout"
	CodeTooManyRequests       ErrorCode = "TooManyRequests"
	CodeForbidden             ErrorCode = "Forbidden"
	CodeServiceUnavailable    ErrorCode = "ServiceUnavailable"
	CodeRuntimeError          ErrorCode = "RuntimeError"
)

// Normal reports whether the cancellation is the regular end of the audio.
func (c Canceled) Normal() bool {
	return c.Reason == ReasonEndOfStream
}

// Message describes the cancellation for the caller.
func (c Canceled) Message() string {
	if c.Reason != ReasonError {
		return fmt.Sprintf("Transcription canceled: %s", c.Reason)
	}
	switch c.Code {
	case CodeAuthenticationFailure:
		return "Authentication failed: Invalid subscription key or region. Details: " + c.Details
	case CodeBadRequest:
		return "Bad request: The audio format may not be supported or the endpoint doesn't support ConversationTranscriber. Details: " + c.Details
	case CodeConnectionFailure:
		return "Connection failed: Unable to connect to Azure Speech Service. Details: " + c.Details
	case CodeServiceTimeout:
		return "Service timeout: The request took too long. Details: " + c.Details
	case CodeTooManyRequests:
		return "Too many requests: Quota exceeded. Details: " + c.Details
	case CodeForbidden:
		return "Forbidden: Access denied. Check if ConversationTranscriber is enabled for your subscription. Details: " + c.Details
	case CodeServiceUnavailable:
		return "Service unavailable: Try again later. Details: " + c.Details
	default:
		return fmt.Sprintf("Error during transcription (Code: %s): %s", c.Code, c.Details)
	}
}
