package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/transcription"
)

// transcribe runs a live session over one uploaded file ("audioFile").
func (h *Handler) transcribe(c *gin.Context) {
	if h.session == nil {
		server.RespondWithError(c, errors.ServiceUnavailable("transcription"))
		return
	}

	fh, err := c.FormFile("audioFile")
	if err != nil {
		server.RespondWithError(c, errors.InvalidAudioFile("", "No file uploaded"))
		return
	}
	if err := h.cfg.realtimeRule().check(fh); err != nil {
		server.RespondWithError(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		server.RespondWithError(c, errors.InvalidAudioFile(fh.Filename, "File could not be read").WithCause(err))
		return
	}
	defer f.Close()

	res, err := h.session.Run(c.Request.Context(), transcription.Request{
		Audio:    f,
		FileName: fh.Filename,
		Locale:   c.PostForm("locale"),
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

const (
	streamWriteWait = 10 * time.Second
	// streamEnd is the text frame a client sends after the last audio frame.
	streamEnd = "end"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// streamMessage is one server frame of the live stream.
type streamMessage struct {
	Type        string                `json:"type"`
	SessionID   string                `json:"sessionId,omitempty"`
	Speaker     string                `json:"speaker,omitempty"`
	Text        string                `json:"text,omitempty"`
	OffsetTicks int64                 `json:"offset,omitempty"`
	Reason      string                `json:"reason,omitempty"`
	Code        string                `json:"code,omitempty"`
	Message     string                `json:"message,omitempty"`
	Result      *transcription.Result `json:"result,omitempty"`
	Error       *errors.ErrorBody     `json:"error,omitempty"`
}

// Stream message types.
const (
	MessageSessionStarted = "session_started"
	MessageTranscribing   = "transcribing"
	MessageTranscribed    = "transcribed"
	MessageNoMatch        = "no_match"
	MessageCanceled       = "canceled"
	MessageSessionStopped = "session_stopped"
	MessageResult         = "result"
	MessageError          = "error"
)

func eventMessage(e transcription.Event) streamMessage {
	switch ev := e.(type) {
	case transcription.SessionStarted:
		return streamMessage{Type: MessageSessionStarted, SessionID: ev.SessionID}
	case transcription.Transcribing:
		return streamMessage{Type: MessageTranscribing, Text: ev.Text}
	case transcription.Transcribed:
		if ev.NoMatch {
			return streamMessage{Type: MessageNoMatch, OffsetTicks: ev.OffsetTicks}
		}
		return streamMessage{Type: MessageTranscribed, Speaker: ev.Speaker, Text: ev.Text, OffsetTicks: ev.OffsetTicks}
	case transcription.Canceled:
		return streamMessage{Type: MessageCanceled, Reason: string(ev.Reason), Code: string(ev.Code), Message: ev.Message()}
	case transcription.SessionStopped:
		return streamMessage{Type: MessageSessionStopped, SessionID: ev.SessionID}
	}
	return streamMessage{Type: "unknown"}
}

// transcribeStream runs a live session over a websocket. The client sends
// audio as binary frames followed by an "end" text frame; the server
// forwards every recognizer event and finishes with a result or error
// frame.
func (h *Handler) transcribeStream(c *gin.Context) {
	if h.session == nil {
		server.RespondWithError(c, errors.ServiceUnavailable("transcription"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.Fields(logger.FieldError, err.Error()))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	audio, pw := io.Pipe()
	go h.pumpAudio(conn, pw, cancel)

	write := func(m streamMessage) {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(m); err != nil {
			h.log.Debug("websocket write failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}

	res, err := h.session.Run(ctx, transcription.Request{
		Audio:    audio,
		FileName: c.DefaultQuery("fileName", "stream.wav"),
		Locale:   c.Query("locale"),
		OnEvent:  func(e transcription.Event) { write(eventMessage(e)) },
	})
	_ = audio.Close()

	if err != nil {
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.Internal(err)
		}
		body := appErr.ToResponse().Error
		write(streamMessage{Type: MessageError, Error: &body})
	} else {
		write(streamMessage{Type: MessageResult, Result: res})
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// pumpAudio copies binary frames into pw until the end frame. A read error
// before the end frame aborts the session.
func (h *Handler) pumpAudio(conn *websocket.Conn, pw *io.PipeWriter, cancel context.CancelFunc) {
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			_ = pw.CloseWithError(err)
			cancel()
			return
		}
		switch {
		case kind == websocket.BinaryMessage:
			if _, err := pw.Write(data); err != nil {
				return
			}
		case kind == websocket.TextMessage && string(data) == streamEnd:
			_ = pw.Close()
			drain(conn, cancel)
			return
		}
	}
}

// drain keeps reading so control frames are handled, and aborts the
// session if the client goes away before the result is written.
func drain(conn *websocket.Conn, cancel context.CancelFunc) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			return
		}
	}
}
