package ledger

import (
	"fmt"
	"slices"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/transcript"
)

// Operation is a bulk speaker operation.
type Operation string

const (
	// OpRename renames a speaker everywhere, including the roster.
	OpRename Operation = "rename"
	// OpReassign moves a speaker's segments to another speaker.
	OpReassign Operation = "reassign"
	// OpDelete reassigns a speaker's segments and drops it from the roster.
	OpDelete Operation = "delete"
)

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	return op == OpRename || op == OpReassign || op == OpDelete
}

// BulkEdit moves every segment of OldSpeaker to NewSpeaker.
type BulkEdit struct {
	Segments   []transcript.Segment
	AuditLog   []transcript.AuditEntry
	Roster     []string
	OldSpeaker string
	NewSpeaker string
	Operation  Operation
}

// BulkSpeakerOperation applies a rename, reassign or delete across the
// transcript and appends one summary audit entry when any segment matched.
// Bulk changes do not capture per-segment originals.
func (l *Ledger) BulkSpeakerOperation(edit BulkEdit) (*Result, error) {
	switch {
	case edit.OldSpeaker == "":
		return nil, errors.InvalidInput("oldSpeaker", "oldSpeaker is required")
	case edit.NewSpeaker == "":
		return nil, errors.InvalidInput("newSpeaker", "newSpeaker is required")
	case !edit.Operation.Valid():
		return nil, errors.InvalidInput("operationType", fmt.Sprintf("unknown operation %q", edit.Operation))
	}

	segs := transcript.Clone(edit.Segments)
	transcript.Renumber(segs)

	affected := []int{}
	for i := range segs {
		if segs[i].Speaker == edit.OldSpeaker {
			segs[i].Speaker = edit.NewSpeaker
			affected = append(affected, i)
		}
	}

	roster := slices.Clone(edit.Roster)
	switch edit.Operation {
	case OpRename:
		if slices.Contains(roster, edit.OldSpeaker) {
			for i, name := range roster {
				if name == edit.OldSpeaker {
					roster[i] = edit.NewSpeaker
				}
			}
			roster = sortedUnique(roster)
		}
	case OpDelete:
		roster = slices.DeleteFunc(roster, func(name string) bool { return name == edit.OldSpeaker })
	}

	audit := slices.Clone(edit.AuditLog)
	var last *transcript.AuditEntry
	if n := len(affected); n > 0 {
		oldSpeaker, newSpeaker := edit.OldSpeaker, edit.NewSpeaker
		entry := transcript.AuditEntry{
			Timestamp:        l.now(),
			Action:           transcript.Action("bulk_speaker_" + string(edit.Operation)),
			SegmentCount:     &n,
			AffectedSegments: affected,
			OldSpeaker:       &oldSpeaker,
			NewSpeaker:       &newSpeaker,
			Description:      bulkDescription(edit.Operation, oldSpeaker, newSpeaker, n),
		}
		audit = append(audit, entry)
		last = &entry
	}

	l.log.Info("bulk speaker operation applied", logger.Fields(
		"operation", string(edit.Operation), logger.FieldSegmentCount, len(affected),
	))

	return &Result{
		Summary:  transcript.Rebuild(segs).WithRoster(roster),
		Segments: segs,
		AuditLog: audit,
		Message:  fmt.Sprintf("Updated speaker names for %d segments", len(segs)),
		LastEdit: last,
	}, nil
}

func bulkDescription(op Operation, oldSpeaker, newSpeaker string, n int) string {
	switch op {
	case OpRename:
		return fmt.Sprintf("Renamed speaker %q to %q across %d segment(s)", oldSpeaker, newSpeaker, n)
	case OpDelete:
		return fmt.Sprintf("Deleted speaker %q and reassigned %d segment(s) to %q", oldSpeaker, n, newSpeaker)
	default:
		return fmt.Sprintf("Reassigned %d segment(s) from %q to %q", n, oldSpeaker, newSpeaker)
	}
}
