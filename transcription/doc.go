// Package transcription runs synchronous single-file recognition sessions.
//
// A Recognizer streams typed events into a channel. Session.Run consumes
// them until the session ends, collects the recognized phrases and
// finalizes them into a transcript with synthesized durations.
//
//	rec, _ := gateway.New(gateway.Config{URL: "http://localhost:8390"}, log)
//	sess := transcription.NewSession(rec, transcription.Config{}, log)
//	res, err := sess.Run(ctx, transcription.Request{Audio: f, FileName: "call.wav"})
package transcription
