// Package transcript holds the speaker-attributed segment model shared by
// the synchronous and batch transcription paths, the parser for platform
// phrase payloads, and the derived views (full text, roster, statistics)
// rebuilt after every edit.
//
// Time is measured in ticks of 100ns, matching the speech platform.
package transcript
