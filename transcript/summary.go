package transcript

import (
	"sort"
	"strings"
)

// SpeakerInfo is derived per-speaker statistics.
type SpeakerInfo struct {
	Name                     string  `json:"name"`
	SegmentCount             int     `json:"segmentCount"`
	TotalSpeakTimeSeconds    float64 `json:"totalSpeakTimeSeconds"`
	FirstAppearanceSeconds   float64 `json:"firstAppearanceSeconds"`
	TotalSpeakTimeFormatted  string  `json:"totalSpeakTimeFormatted"`
	FirstAppearanceFormatted string  `json:"firstAppearanceFormatted"`
}

// Summary holds the views recomputed from segments after every mutation.
type Summary struct {
	FullTranscript    string        `json:"fullTranscript"`
	AvailableSpeakers []string      `json:"availableSpeakers"`
	SpeakerStatistics []SpeakerInfo `json:"speakerStatistics"`
}

// Rebuild derives the full transcript, the speaker roster and per-speaker
// statistics from segs. The roster here only knows speakers that still own
// segments; callers holding a maintained roster must use WithRoster.
func Rebuild(segs []Segment) Summary {
	lines := make([]string, len(segs))
	for i, s := range segs {
		lines[i] = "[" + s.Speaker + "]: " + s.Text
	}
	return Summary{
		FullTranscript:    strings.Join(lines, "\n"),
		AvailableSpeakers: SpeakersOf(segs),
		SpeakerStatistics: Statistics(segs),
	}
}

// WithRoster replaces the derived roster with the caller-maintained one.
func (s Summary) WithRoster(roster []string) Summary {
	if roster != nil {
		s.AvailableSpeakers = append([]string(nil), roster...)
	}
	return s
}

// SpeakersOf returns the sorted unique non-blank speaker names in segs.
func SpeakersOf(segs []Segment) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, s := range segs {
		if strings.TrimSpace(s.Speaker) == "" || seen[s.Speaker] {
			continue
		}
		seen[s.Speaker] = true
		out = append(out, s.Speaker)
	}
	sort.Strings(out)
	return out
}

// Statistics groups segs by speaker and orders speakers by first appearance.
func Statistics(segs []Segment) []SpeakerInfo {
	index := make(map[string]int)
	var stats []SpeakerInfo
	for _, s := range segs {
		i, ok := index[s.Speaker]
		if !ok {
			i = len(stats)
			index[s.Speaker] = i
			stats = append(stats, SpeakerInfo{Name: s.Speaker, FirstAppearanceSeconds: s.StartSeconds()})
		}
		stats[i].SegmentCount++
		stats[i].TotalSpeakTimeSeconds += s.EndSeconds() - s.StartSeconds()
		if start := s.StartSeconds(); start < stats[i].FirstAppearanceSeconds {
			stats[i].FirstAppearanceSeconds = start
		}
	}
	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].FirstAppearanceSeconds < stats[b].FirstAppearanceSeconds
	})
	for i := range stats {
		stats[i].TotalSpeakTimeFormatted = FormatClock(stats[i].TotalSpeakTimeSeconds)
		stats[i].FirstAppearanceFormatted = FormatClock(stats[i].FirstAppearanceSeconds)
	}
	if stats == nil {
		stats = []SpeakerInfo{}
	}
	return stats
}
