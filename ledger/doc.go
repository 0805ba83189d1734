// Package ledger applies user edits to a transcript and records them.
//
// State is passed in and returned by value on every call: the caller owns
// the segments, the speaker roster and the audit log between requests.
// Concurrent editors of one transcript are not coordinated; the last
// request wins.
package ledger
