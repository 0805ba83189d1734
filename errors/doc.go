// Package errors defines AppError and the error codes used across the
// transcription services. Each code maps to an HTTP status so handlers can
// answer with a consistent {"error": {...}} envelope.
package errors
