package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 3840
	DefaultMaxBytes     = int64(5 * 1024 * 1024)
)

var (
	ErrEmptyImage        = errors.New("media: empty image data")
	ErrImageTooLarge     = errors.New("media: image exceeds size limit")
	ErrUnsupportedFormat = errors.New("media: unsupported image format")
	ErrImageDimensions   = errors.New("media: image dimensions out of range")
)

// formats maps decoder names to the content type stored with the object.
var formats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Result is an accepted image. ContentType comes from the decoded header,
// not from what the client claimed.
type Result struct {
	Bytes       []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

type Inspector struct {
	maxBytes     int64
	maxDimension int
}

func NewInspector(maxBytes int64, maxDimension int) *Inspector {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Inspector{maxBytes: maxBytes, maxDimension: maxDimension}
}

// Inspect reads the upload and checks size, format and dimensions.
func (i *Inspector) Inspect(upload Upload) (*Result, error) {
	if upload.Reader == nil {
		return nil, ErrEmptyImage
	}
	if upload.Size > i.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, upload.Size)
	}
	data, err := io.ReadAll(io.LimitReader(upload.Reader, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if int64(len(data)) > i.maxBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrImageTooLarge, i.maxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	contentType, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > i.maxDimension || cfg.Height > i.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrImageDimensions, cfg.Width, cfg.Height, i.maxDimension)
	}

	return &Result{
		Bytes:       data,
		ContentType: contentType,
		Extension:   extensionFor(contentType, upload.FileName),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func extensionFor(contentType, fileName string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == ".jpeg" {
		return ext
	}
	return ".jpg"
}
