package util

import (
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// LastPathSegment returns the final path element of a URL with any query or
// fragment removed. Inputs that do not parse are split on '/' and '?' directly.
func LastPathSegment(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	s := raw
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// StripUploadPrefix removes the "<uuid>_" prefix added to uploaded object
// names. Names whose prefix is not a UUID are returned unchanged.
func StripUploadPrefix(name string) string {
	prefix, rest, ok := strings.Cut(name, "_")
	if !ok || rest == "" {
		return name
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return name
	}
	return rest
}

// UploadObjectName builds a collision-free object name for an uploaded file.
func UploadObjectName(filename string) string {
	return uuid.NewString() + "_" + path.Base(strings.ReplaceAll(filename, "\\", "/"))
}

// DisplayFileName extracts the original file name from a storage URL.
func DisplayFileName(raw string) string {
	return StripUploadPrefix(LastPathSegment(raw))
}
