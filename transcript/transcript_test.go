package transcript

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func seg(speaker, text string, offsetSec, durSec float64) Segment {
	return Segment{
		Speaker:       speaker,
		Text:          text,
		OffsetTicks:   int64(offsetSec * TicksPerSecond),
		DurationTicks: int64(durSec * TicksPerSecond),
	}
}

func TestParsePhrases(t *testing.T) {
	payload := []byte(`{
	  "source": "https://a/c/x_meeting.wav",
	  "recognizedPhrases": [
	    {"speaker": 1, "offsetInTicks": 10000000, "durationInTicks": 25000000, "nBest": [{"display": "Hello there.", "lexical": "hello there"}]},
	    {"speaker": 2, "offsetInTicks": 40000000, "durationInTicks": 10000000, "nBest": [{"display": "", "lexical": "lexical only"}]},
	    {"speaker": 1, "offsetInTicks": 60000000, "durationInTicks": 5000000, "nBest": [{"display": "   "}]},
	    {"offsetInTicks": 70000000.4, "durationInTicks": 1.6, "nBest": [{"display": "Who said that?"}]},
	    {"speaker": 3, "offsetInTicks": 80000000, "nBest": []}
	  ]
	}`)

	segs, err := ParsePhrases(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	want := []struct {
		speaker string
		text    string
		offset  int64
		line    int
	}{
		{"Speaker 1", "Hello there.", 10000000, 1},
		{"Speaker 2", "lexical only", 40000000, 2},
		{UnknownSpeaker, "Who said that?", 70000000, 3},
	}
	for i, w := range want {
		if segs[i].Speaker != w.speaker || segs[i].Text != w.text || segs[i].OffsetTicks != w.offset || segs[i].LineNumber != w.line {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], w)
		}
	}
	if segs[2].DurationTicks != 2 {
		t.Errorf("expected rounded duration 2, got %d", segs[2].DurationTicks)
	}
}

func TestParsePhrases_MissingListAndBadJSON(t *testing.T) {
	if _, err := ParsePhrases([]byte(`{"combinedRecognizedPhrases": []}`)); !errors.Is(err, ErrNoRecognizedPhrases) {
		t.Errorf("expected ErrNoRecognizedPhrases, got %v", err)
	}
	if _, err := ParsePhrases([]byte(`not json`)); err == nil {
		t.Error("expected decode error")
	}
	segs, err := ParsePhrases([]byte(`{"recognizedPhrases": []}`))
	if err != nil || len(segs) != 0 {
		t.Errorf("expected empty result, got %v %v", segs, err)
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"PT1H2M3S", (3600 + 120 + 3) * TicksPerSecond, true},
		{"PT45.25S", 452500000, true},
		{"PT10M", 600 * TicksPerSecond, true},
		{"PT0.0000001S", 1, true},
		{"PT", 0, false},
		{"P1D", 0, false},
		{"", 0, false},
		{"1:00:00", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseISODuration(tc.in)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("ParseISODuration(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestFinalizeLive(t *testing.T) {
	raw := []Segment{
		seg("Guest-1", "Good morning everyone", 1, 0),
		seg("unknown", "  ", 2, 0),
		seg("Guest-2", "Morning", 4, 0),
		seg("Unknown", "mumbled words here", 3, 0),
		seg("Guest-1", "one two three four five six seven", 9, 0),
	}
	segs := FinalizeLive(raw, DefaultLiveOptions())
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments after noise filter, got %d", len(segs))
	}
	if segs[0].DurationTicks != 3*TicksPerSecond {
		t.Errorf("expected 3s duration, got %d", segs[0].DurationTicks)
	}
	if segs[1].DurationTicks != 0 {
		t.Errorf("negative gap must clamp to 0, got %d", segs[1].DurationTicks)
	}
	if segs[3].DurationTicks != int64(7.0/2.5*TicksPerSecond) {
		t.Errorf("unexpected last duration %d", segs[3].DurationTicks)
	}
	for i, s := range segs {
		if s.LineNumber != i+1 {
			t.Errorf("segment %d has line %d", i, s.LineNumber)
		}
	}

	short := FinalizeLive([]Segment{seg("Guest-1", "Hi", 0, 0)}, DefaultLiveOptions())
	if short[0].DurationTicks != 2*TicksPerSecond {
		t.Errorf("expected minimum 2s duration, got %d", short[0].DurationTicks)
	}
}

func TestRebuild(t *testing.T) {
	segs := []Segment{
		seg("Speaker 2", "Hi", 5, 2),
		seg("Speaker 1", "Hello", 1, 3),
		seg("Speaker 2", "Bye", 10, 1.5),
		seg(" ", "ghost", 20, 1),
	}
	sum := Rebuild(segs)
	wantText := "[Speaker 2]: Hi\n[Speaker 1]: Hello\n[Speaker 2]: Bye\n[ ]: ghost"
	if sum.FullTranscript != wantText {
		t.Errorf("unexpected transcript %q", sum.FullTranscript)
	}
	if strings.Join(sum.AvailableSpeakers, ",") != "Speaker 1,Speaker 2" {
		t.Errorf("unexpected roster %v", sum.AvailableSpeakers)
	}
	if len(sum.SpeakerStatistics) != 3 {
		t.Fatalf("expected 3 stat groups, got %d", len(sum.SpeakerStatistics))
	}
	first := sum.SpeakerStatistics[0]
	if first.Name != "Speaker 1" || first.SegmentCount != 1 || first.TotalSpeakTimeSeconds != 3 {
		t.Errorf("unexpected first stat %+v", first)
	}
	second := sum.SpeakerStatistics[1]
	if second.Name != "Speaker 2" || second.SegmentCount != 2 || second.TotalSpeakTimeSeconds != 3.5 || second.FirstAppearanceSeconds != 5 {
		t.Errorf("unexpected second stat %+v", second)
	}
}

func TestSummaryWithRosterKeepsZeroSegmentSpeakers(t *testing.T) {
	sum := Rebuild([]Segment{seg("Speaker 1", "Hello", 0, 1)}).WithRoster([]string{"Speaker 1", "Speaker X"})
	if strings.Join(sum.AvailableSpeakers, ",") != "Speaker 1,Speaker X" {
		t.Errorf("roster override lost a speaker: %v", sum.AvailableSpeakers)
	}
	if got := Rebuild(nil).WithRoster(nil); len(got.AvailableSpeakers) != 0 || got.SpeakerStatistics == nil {
		t.Errorf("unexpected empty summary %+v", got)
	}
}

func TestSegmentJSON(t *testing.T) {
	orig := "Speaker 1"
	s := Segment{Speaker: "Alex", Text: "Hi", OffsetTicks: 3725 * TicksPerSecond, DurationTicks: TicksPerSecond, LineNumber: 4, OriginalSpeaker: &orig}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var view map[string]any
	_ = json.Unmarshal(data, &view)
	if view["uiFormattedStartTime"] != "01:02:05" || view["speakerWasChanged"] != true || view["textWasChanged"] != false {
		t.Errorf("unexpected derived fields %v", view)
	}
	if _, ok := view["originalText"]; ok {
		t.Error("unset originalText must be omitted")
	}

	var back Segment
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Speaker != "Alex" || back.OriginalSpeaker == nil || *back.OriginalSpeaker != "Speaker 1" || back.OriginalText != nil {
		t.Errorf("unexpected decoded segment %+v", back)
	}

	var empty Segment
	_ = json.Unmarshal([]byte(`{"speaker":"A","text":"t","originalText":""}`), &empty)
	if empty.OriginalText == nil || *empty.OriginalText != "" {
		t.Error("empty originalText must stay distinct from unset")
	}
}

func TestCloneIsDeep(t *testing.T) {
	o := "old"
	segs := []Segment{{Speaker: "A", OriginalText: &o}}
	c := Clone(segs)
	*c[0].OriginalText = "changed"
	if *segs[0].OriginalText != "old" {
		t.Error("Clone must not share original pointers")
	}
}

func TestSortForDisplay(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	line := func(n int) *int { return &n }
	entries := []AuditEntry{
		{Timestamp: t0.Add(3 * time.Second), Action: ActionEdit, LineNumber: line(5)},
		{Timestamp: t0, Action: ActionBulkSpeakerRename},
		{Timestamp: t0.Add(2 * time.Second), Action: ActionEdit, LineNumber: line(2)},
		{Timestamp: t0.Add(1 * time.Second), Action: ActionSpeakerChange, LineNumber: line(5)},
	}
	sorted := SortForDisplay(entries)
	order := []Action{ActionEdit, ActionSpeakerChange, ActionEdit, ActionBulkSpeakerRename}
	for i, a := range order {
		if sorted[i].Action != a {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].Action, a)
		}
	}
	if *sorted[0].LineNumber != 2 || !sorted[3].IsBulk() {
		t.Error("unexpected ordering")
	}
	if entries[0].Timestamp != t0.Add(3*time.Second) {
		t.Error("input must not be reordered")
	}
}
