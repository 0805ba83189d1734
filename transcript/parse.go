package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrNoRecognizedPhrases is returned for payloads without a recognizedPhrases list.
var ErrNoRecognizedPhrases = errors.New("transcript: payload has no recognizedPhrases")

type phrasePayload struct {
	RecognizedPhrases *[]phrase `json:"recognizedPhrases"`
}

type phrase struct {
	Speaker         *int        `json:"speaker"`
	OffsetInTicks   float64     `json:"offsetInTicks"`
	DurationInTicks float64     `json:"durationInTicks"`
	NBest           []candidate `json:"nBest"`
}

type candidate struct {
	Display string `json:"display"`
	Lexical string `json:"lexical"`
}

// ParsePhrases converts a batch result payload into segments, one per phrase
// with non-blank text, numbered from 1 in payload order.
func ParsePhrases(payload []byte) ([]Segment, error) {
	var p phrasePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("transcript: decode phrases: %w", err)
	}
	if p.RecognizedPhrases == nil {
		return nil, ErrNoRecognizedPhrases
	}

	segs := make([]Segment, 0, len(*p.RecognizedPhrases))
	for _, ph := range *p.RecognizedPhrases {
		if len(ph.NBest) == 0 {
			continue
		}
		best := ph.NBest[0]
		text := best.Display
		if text == "" {
			text = best.Lexical
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		speaker := UnknownSpeaker
		if ph.Speaker != nil {
			speaker = SpeakerLabel(*ph.Speaker)
		}
		segs = append(segs, Segment{
			Speaker:       speaker,
			Text:          text,
			OffsetTicks:   int64(math.Round(ph.OffsetInTicks)),
			DurationTicks: int64(math.Round(ph.DurationInTicks)),
			LineNumber:    len(segs) + 1,
		})
	}
	return segs, nil
}
