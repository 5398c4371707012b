// Package model holds the types shared across trendscope packages.
package model

import (
	"bytes"
	"io"
	"os"
)

// MaxImageBytes is the largest chart image accepted for upload (10 MiB).
const MaxImageBytes int64 = 10 * 1024 * 1024

// Accepted image content types. image/jpg is not registered but browsers and
// some tools still report it.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
	ContentTypeJPG  = "image/jpg"
)

// SelectedImage is the chart image the user picked for prediction.
type SelectedImage struct {
	Name        string // Base file name sent with the upload
	Path        string // Source path on disk, empty for in-memory images
	ContentType string // Declared type, e.g. image/png
	Data        []byte // Optional in-memory contents; takes precedence over Path
	Size        int64
}

// Open returns a reader over the image contents.
func (s SelectedImage) Open() (io.ReadCloser, error) {
	if s.Data != nil {
		return io.NopCloser(bytes.NewReader(s.Data)), nil
	}
	return os.Open(s.Path)
}

// Preview is a displayable representation of a decoded SelectedImage.
type Preview struct {
	DataURL string
	Format  string
	Width   int
	Height  int
}
