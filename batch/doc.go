// Package batch orchestrates asynchronous transcription jobs on the speech
// platform.
//
// The Service submits audio through object storage, lists and refreshes
// jobs with a terminal-state cache supplied by the caller, resolves each
// job's input files in parallel, and merges selected result files into a
// single timeline. Job state lives on the platform; nothing here persists
// between calls.
//
// Listing and status lookups are best-effort: failures come back as a
// Degraded value beside an empty result instead of an error.
package batch
