package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/speechkit/transcription"
)

func dialStream(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/transcribe/stream?fileName=call.wav"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntilFinal(t *testing.T, conn *websocket.Conn) []streamMessage {
	t.Helper()
	var got []streamMessage
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var m streamMessage
		require.NoError(t, conn.ReadJSON(&m))
		got = append(got, m)
		if m.Type == MessageResult || m.Type == MessageError {
			return got
		}
	}
}

func TestTranscribeStream(t *testing.T) {
	rec := &audioRecognizer{events: scriptedEvents()}
	env := newTestEnv(t, WithSession(newSession(rec)))
	conn := dialStream(t, env)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("RIFF-")))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("stream")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("end")))

	got := readUntilFinal(t, conn)
	types := make([]string, len(got))
	for i, m := range got {
		types[i] = m.Type
	}
	assert.Equal(t, []string{
		MessageSessionStarted, MessageTranscribing, MessageTranscribed, MessageCanceled, MessageResult,
	}, types)

	assert.Equal(t, "s1", got[0].SessionID)
	assert.Equal(t, "Guest-1", got[2].Speaker)
	assert.Equal(t, "Transcription canceled: EndOfStream", got[3].Message)

	final := got[len(got)-1].Result
	require.NotNil(t, final)
	assert.True(t, final.Success)
	require.Len(t, final.Segments, 1)
	assert.Equal(t, "good morning everyone", final.Segments[0].Text)
	assert.Equal(t, "RIFF-stream", rec.received())
}

func TestTranscribeStream_ErrorFrame(t *testing.T) {
	rec := &audioRecognizer{events: []transcription.Event{
		transcription.Canceled{Reason: transcription.ReasonError, Code: transcription.CodeAuthenticationFailure, Details: "bad key"},
	}}
	env := newTestEnv(t, WithSession(newSession(rec)))
	conn := dialStream(t, env)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("end")))

	got := readUntilFinal(t, conn)
	last := got[len(got)-1]
	require.Equal(t, MessageError, last.Type)
	require.NotNil(t, last.Error)
	assert.Equal(t, "TRANSCRIPTION_ERROR", string(last.Error.Code))
	assert.Equal(t, "Authentication failed: Invalid subscription key or region. Details: bad key", last.Error.Message)
}

func TestEventMessage_NoMatch(t *testing.T) {
	m := eventMessage(transcription.Transcribed{NoMatch: true, OffsetTicks: 5})
	assert.Equal(t, MessageNoMatch, m.Type)
	assert.Equal(t, int64(5), m.OffsetTicks)
}
