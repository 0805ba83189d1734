package transcript

import (
	"sort"
	"time"
)

// Action names the kind of change an AuditEntry records.
type Action string

const (
	ActionEdit                  Action = "edit"
	ActionSpeakerChange         Action = "speaker_change"
	ActionEditWithSpeakerChange Action = "edit_with_speaker_change"
	ActionBulkSpeakerRename     Action = "bulk_speaker_rename"
	ActionBulkSpeakerReassign   Action = "bulk_speaker_reassign"
	ActionBulkSpeakerDelete     Action = "bulk_speaker_delete"
)

// AuditEntry records one change to a transcript. Individual edits carry
// SegmentIndex and LineNumber; bulk operations carry AffectedSegments.
type AuditEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	Action           Action    `json:"action"`
	SegmentIndex     *int      `json:"segmentIndex,omitempty"`
	LineNumber       *int      `json:"lineNumber,omitempty"`
	Speaker          string    `json:"speaker,omitempty"`
	StartTime        string    `json:"startTime,omitempty"`
	OldText          *string   `json:"oldText,omitempty"`
	NewText          *string   `json:"newText,omitempty"`
	OldSpeaker       *string   `json:"oldSpeaker,omitempty"`
	NewSpeaker       *string   `json:"newSpeaker,omitempty"`
	SegmentCount     *int      `json:"segmentCount,omitempty"`
	AffectedSegments []int     `json:"affectedSegments,omitempty"`
	Description      string    `json:"description,omitempty"`
}

// IsBulk reports whether the entry summarizes a bulk speaker operation.
func (e AuditEntry) IsBulk() bool {
	switch e.Action {
	case ActionBulkSpeakerRename, ActionBulkSpeakerReassign, ActionBulkSpeakerDelete:
		return true
	}
	return false
}

// SortForDisplay orders entries by (lineNumber, timestamp) without modifying
// the input. Entries without a line number sort last.
func SortForDisplay(entries []AuditEntry) []AuditEntry {
	out := make([]AuditEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := lineKey(out[i]), lineKey(out[j])
		if li != lj {
			return li < lj
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func lineKey(e AuditEntry) int {
	if e.LineNumber == nil {
		return int(^uint(0) >> 1)
	}
	return *e.LineNumber
}
