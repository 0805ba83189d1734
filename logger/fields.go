package logger

import (
	"net/url"
	"time"
)

// Standard field keys for structured logging.
const (
	FieldService      = "service"
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldOperation    = "operation"
	FieldStatus       = "status"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
	FieldJobID        = "job_id"
	FieldFileIndex    = "file_index"
	FieldFileName     = "file_name"
	FieldLocale       = "locale"
	FieldSegmentCount = "segment_count"
	FieldURL          = "url"
	FieldRemaining    = "remaining_hours"
)

// Fields builds a map from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields(logger.FieldJobID, id, logger.FieldSegmentCount, 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}

// RedactURL drops the query string so signed URLs never reach the logs.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
