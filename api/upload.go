package api

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kbukum/speechkit/errors"
)

// uploadRule is the extension and size policy of one upload mode.
type uploadRule struct {
	mode       string
	extensions []string
	maxBytes   int64
}

// check validates an uploaded file's name and size. Content is not sniffed.
func (r uploadRule) check(fh *multipart.FileHeader) error {
	if fh == nil || fh.Filename == "" {
		return errors.InvalidAudioFile("", "No file provided")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(r.extensions, ext) {
		return errors.InvalidAudioFile(fh.Filename, fmt.Sprintf(
			"Invalid file type '%s'. Allowed types for %s mode: %s",
			ext, r.mode, strings.Join(r.extensions, ", ")))
	}

	switch {
	case fh.Size == 0:
		return errors.InvalidAudioFile(fh.Filename, "File is empty")
	case fh.Size > r.maxBytes:
		return errors.InvalidAudioFile(fh.Filename, fmt.Sprintf(
			"File size (%.1f MB) exceeds maximum allowed size (%.0f MB) for %s mode",
			megabytes(fh.Size), megabytes(r.maxBytes), r.mode))
	}
	return nil
}

func megabytes(n int64) float64 {
	return float64(n) / (1 << 20)
}
