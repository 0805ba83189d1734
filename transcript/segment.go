package transcript

import (
	"encoding/json"
	"fmt"
)

// TicksPerSecond is the number of 100ns ticks in a second.
const TicksPerSecond = 10_000_000

// UnknownSpeaker labels phrases the platform could not attribute.
const UnknownSpeaker = "Unknown"

// Segment is one speaker-attributed span of text.
//
// OriginalSpeaker and OriginalText are nil until the first change of the
// respective field and are never overwritten afterwards.
type Segment struct {
	Speaker         string  `json:"speaker"`
	Text            string  `json:"text"`
	OffsetTicks     int64   `json:"offsetInTicks"`
	DurationTicks   int64   `json:"durationInTicks"`
	LineNumber      int     `json:"lineNumber"`
	OriginalSpeaker *string `json:"originalSpeaker,omitempty"`
	OriginalText    *string `json:"originalText,omitempty"`
}

// SpeakerLabel returns the display label for a numeric speaker tag.
func SpeakerLabel(tag int) string {
	return fmt.Sprintf("Speaker %d", tag)
}

// StartSeconds is the segment start in seconds.
func (s Segment) StartSeconds() float64 {
	return float64(s.OffsetTicks) / TicksPerSecond
}

// EndSeconds is the segment end in seconds.
func (s Segment) EndSeconds() float64 {
	return float64(s.OffsetTicks+s.DurationTicks) / TicksPerSecond
}

// EndTicks is the tick at which the segment ends.
func (s Segment) EndTicks() int64 {
	return s.OffsetTicks + s.DurationTicks
}

// FormattedStart renders the start as HH:MM:SS.
func (s Segment) FormattedStart() string {
	return FormatClock(s.StartSeconds())
}

// SpeakerWasChanged reports whether the speaker differs from the captured original.
func (s Segment) SpeakerWasChanged() bool {
	return s.OriginalSpeaker != nil && *s.OriginalSpeaker != "" && *s.OriginalSpeaker != s.Speaker
}

// TextWasChanged reports whether the text differs from the captured original.
func (s Segment) TextWasChanged() bool {
	return s.OriginalText != nil && *s.OriginalText != "" && *s.OriginalText != s.Text
}

// segmentView adds the derived fields clients render.
type segmentView struct {
	wireSegment
	StartTimeInSeconds   float64 `json:"startTimeInSeconds"`
	EndTimeInSeconds     float64 `json:"endTimeInSeconds"`
	UIFormattedStartTime string  `json:"uiFormattedStartTime"`
	SpeakerWasChanged    bool    `json:"speakerWasChanged"`
	TextWasChanged       bool    `json:"textWasChanged"`
}

type wireSegment Segment

// MarshalJSON writes the stored fields plus the derived timing and change flags.
func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(segmentView{
		wireSegment:          wireSegment(s),
		StartTimeInSeconds:   s.StartSeconds(),
		EndTimeInSeconds:     s.EndSeconds(),
		UIFormattedStartTime: s.FormattedStart(),
		SpeakerWasChanged:    s.SpeakerWasChanged(),
		TextWasChanged:       s.TextWasChanged(),
	})
}

// UnmarshalJSON reads the stored fields; derived fields are ignored.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var w wireSegment
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Segment(w)
	return nil
}

// Clone returns a deep copy of segs.
func Clone(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = s
		if s.OriginalSpeaker != nil {
			v := *s.OriginalSpeaker
			out[i].OriginalSpeaker = &v
		}
		if s.OriginalText != nil {
			v := *s.OriginalText
			out[i].OriginalText = &v
		}
	}
	return out
}

// Renumber assigns 1-based line numbers in sequence order.
func Renumber(segs []Segment) {
	for i := range segs {
		segs[i].LineNumber = i + 1
	}
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(seconds float64) string {
	total := int64(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
