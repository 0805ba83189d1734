package transcript

import (
	"math"
	"regexp"
	"strconv"
)

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// ParseISODuration converts a PT#H#M#S duration into ticks, rounding to the
// nearest tick. It reports false for anything it cannot read.
func ParseISODuration(s string) (int64, bool) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "PT" {
		return 0, false
	}
	var seconds float64
	if m[1] != "" {
		h, _ := strconv.ParseFloat(m[1], 64)
		seconds += h * 3600
	}
	if m[2] != "" {
		mins, _ := strconv.ParseFloat(m[2], 64)
		seconds += mins * 60
	}
	if m[3] != "" {
		sec, _ := strconv.ParseFloat(m[3], 64)
		seconds += sec
	}
	return int64(math.Round(seconds * TicksPerSecond)), true
}
