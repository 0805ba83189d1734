package sastoken

import (
	"net/url"
	"time"
)

// ExpiryParam is the query parameter that carries the expiry.
const ExpiryParam = "se"

// Layout is the timestamp format of the expiry parameter.
const Layout = "2006-01-02T15:04:05Z"

// ParseExpiry returns the expiry encoded in rawURL, if any.
func ParseExpiry(rawURL string) (time.Time, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return time.Time{}, false
	}
	se := u.Query().Get(ExpiryParam)
	if se == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, se)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// IsExpired reports whether rawURL's token has expired at now.
func IsExpired(rawURL string, now time.Time) bool {
	exp, ok := ParseExpiry(rawURL)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// Status summarizes a signed URL's validity at a point in time.
type Status struct {
	Expiry    *time.Time
	Expired   bool
	Remaining time.Duration
}

// Inspect reports the token status of rawURL at now.
func Inspect(rawURL string, now time.Time) Status {
	exp, ok := ParseExpiry(rawURL)
	if !ok {
		return Status{}
	}
	st := Status{Expiry: &exp, Expired: !now.Before(exp)}
	if !st.Expired {
		st.Remaining = exp.Sub(now)
	}
	return st
}
