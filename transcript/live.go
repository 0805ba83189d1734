package transcript

import (
	"math"
	"strings"
)

// LiveOptions controls duration synthesis for live recognition output.
type LiveOptions struct {
	WordsPerSecond    float64
	MinSegmentSeconds float64
}

// DefaultLiveOptions matches conversational speech at 2.5 words per second.
func DefaultLiveOptions() LiveOptions {
	return LiveOptions{WordsPerSecond: 2.5, MinSegmentSeconds: 2.0}
}

// FinalizeLive cleans segments collected from a live session. Unattributed
// segments with blank text are dropped. Each remaining segment lasts until
// the next one starts (never negative); the last one is estimated from its
// word count. Line numbers are reassigned.
func FinalizeLive(raw []Segment, opts LiveOptions) []Segment {
	if opts.WordsPerSecond <= 0 {
		opts.WordsPerSecond = DefaultLiveOptions().WordsPerSecond
	}

	segs := make([]Segment, 0, len(raw))
	for _, s := range raw {
		if strings.EqualFold(s.Speaker, UnknownSpeaker) && strings.TrimSpace(s.Text) == "" {
			continue
		}
		segs = append(segs, s)
	}

	for i := range segs {
		if i+1 < len(segs) {
			segs[i].DurationTicks = max(segs[i+1].OffsetTicks-segs[i].OffsetTicks, 0)
			continue
		}
		words := float64(len(strings.Fields(segs[i].Text)))
		seconds := max(words/opts.WordsPerSecond, opts.MinSegmentSeconds)
		segs[i].DurationTicks = int64(math.Round(seconds * TicksPerSecond))
	}
	Renumber(segs)
	return segs
}
