package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/transcript"
)

// Ledger applies edits. The zero value is not usable; call New.
type Ledger struct {
	now func() time.Time
	log *logger.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the timestamp source for audit entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger that logs through log.
func New(log *logger.Logger, opts ...Option) *Ledger {
	l := &Ledger{now: time.Now, log: log.WithComponent("ledger")}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TextEdit changes the text, and optionally the speaker, of one segment.
type TextEdit struct {
	Segments   []transcript.Segment
	AuditLog   []transcript.AuditEntry
	Roster     []string
	Index      int
	NewText    string
	NewSpeaker *string
}

// Result is the transcript state after an edit.
type Result struct {
	transcript.Summary
	Segments []transcript.Segment   `json:"segments"`
	AuditLog []transcript.AuditEntry `json:"auditLog"`
	Message  string                  `json:"message"`
	// LastEdit is the entry appended by this call, if any.
	LastEdit *transcript.AuditEntry `json:"lastEdit,omitempty"`
}

// UpdateSegmentText applies a single-segment edit. The first change of a
// field captures its previous value as the segment's original; later edits
// leave the original alone. An edit that changes nothing is rejected.
func (l *Ledger) UpdateSegmentText(edit TextEdit) (*Result, error) {
	if edit.Index < 0 || edit.Index >= len(edit.Segments) {
		return nil, errors.Validation("Invalid segment index").WithDetail("segmentIndex", edit.Index)
	}

	segs := transcript.Clone(edit.Segments)
	seg := &segs[edit.Index]
	oldText, oldSpeaker := seg.Text, seg.Speaker

	textChanged := edit.NewText != oldText
	speakerChanged := edit.NewSpeaker != nil && *edit.NewSpeaker != oldSpeaker
	if !textChanged && !speakerChanged {
		return nil, errors.Validation("No changes detected")
	}

	if textChanged && seg.OriginalText == nil {
		seg.OriginalText = &oldText
	}
	if speakerChanged && seg.OriginalSpeaker == nil {
		seg.OriginalSpeaker = &oldSpeaker
	}
	seg.Text = edit.NewText
	if speakerChanged {
		seg.Speaker = *edit.NewSpeaker
	}

	index, line := edit.Index, seg.LineNumber
	newText := edit.NewText
	entry := transcript.AuditEntry{
		Timestamp:    l.now(),
		Action:       editAction(textChanged, speakerChanged),
		SegmentIndex: &index,
		LineNumber:   &line,
		Speaker:      seg.Speaker,
		StartTime:    seg.FormattedStart(),
		OldText:      &oldText,
		NewText:      &newText,
	}
	if speakerChanged {
		entry.OldSpeaker = &oldSpeaker
		entry.NewSpeaker = edit.NewSpeaker
	}

	roster := edit.Roster
	if roster != nil && speakerChanged && !slices.Contains(roster, seg.Speaker) {
		roster = sortedUnique(append(slices.Clone(roster), seg.Speaker))
	}

	l.log.Info("segment edited", logger.Fields(
		"segment_index", edit.Index, "line_number", line, "action", string(entry.Action),
	))

	return &Result{
		Summary:  transcript.Rebuild(segs).WithRoster(roster),
		Segments: segs,
		AuditLog: append(slices.Clone(edit.AuditLog), entry),
		Message:  editMessage(line, textChanged, speakerChanged, seg.Speaker),
		LastEdit: &entry,
	}, nil
}

// Refresh renumbers segs and rebuilds the derived views, keeping the
// caller's roster when one is supplied.
func (l *Ledger) Refresh(segs []transcript.Segment, roster []string, audit []transcript.AuditEntry) *Result {
	out := transcript.Clone(segs)
	transcript.Renumber(out)
	return &Result{
		Summary:  transcript.Rebuild(out).WithRoster(roster),
		Segments: out,
		AuditLog: slices.Clone(audit),
		Message:  fmt.Sprintf("Updated speaker names for %d segments", len(out)),
	}
}

func editAction(textChanged, speakerChanged bool) transcript.Action {
	switch {
	case textChanged && speakerChanged:
		return transcript.ActionEditWithSpeakerChange
	case speakerChanged:
		return transcript.ActionSpeakerChange
	default:
		return transcript.ActionEdit
	}
}

func editMessage(line int, textChanged, speakerChanged bool, speaker string) string {
	switch {
	case textChanged && speakerChanged:
		return fmt.Sprintf("Segment #%d: Speaker changed to %q and text updated", line, speaker)
	case speakerChanged:
		return fmt.Sprintf("Segment #%d: Speaker changed to %q", line, speaker)
	default:
		return fmt.Sprintf("Segment #%d: Text updated", line)
	}
}

func sortedUnique(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
