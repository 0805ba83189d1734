// Package diarization describes the speaker-count hints sent with a batch
// transcription job. Speaker separation itself happens on the platform.
package diarization
