package sastoken

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   time.Time
		wantOK bool
	}{
		{"encoded", "https://a.blob.core.windows.net/c/f.json?sv=2022&se=2025-06-02T12%3A00%3A00Z&sig=x", time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), true},
		{"raw colons", "https://a/c/f.json?se=2020-01-01T00:00:00Z", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"missing", "https://a/c/f.json?sig=x", time.Time{}, false},
		{"garbage value", "https://a/c/f.json?se=tomorrow", time.Time{}, false},
		{"malformed url", "http://[::1]:namedport/%zz", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseExpiry(tc.url)
			if ok != tc.wantOK || !got.Equal(tc.want) {
				t.Errorf("ParseExpiry = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	if !IsExpired("https://a/f?se=2020-01-01T00:00:00Z", now) {
		t.Error("2020 expiry should be expired in 2025")
	}
	if IsExpired("https://a/f", now) {
		t.Error("URL without expiry must not be expired")
	}
	if !IsExpired("https://a/f?se=2025-06-01T12:00:00Z", now) {
		t.Error("expiry equal to now counts as expired")
	}
	if IsExpired("https://a/f?se=2025-06-01T12:00:01Z", now) {
		t.Error("future expiry is not expired")
	}
}

func TestInspect(t *testing.T) {
	st := Inspect("https://a/f?se=2025-06-01T18:00:00Z", now)
	if st.Expiry == nil || st.Expired || st.Remaining != 6*time.Hour {
		t.Errorf("unexpected status %+v", st)
	}
	if st := Inspect("https://a/f", now); st.Expiry != nil || st.Expired {
		t.Errorf("expected empty status, got %+v", st)
	}
}
