package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspectorAcceptsPNG(t *testing.T) {
	data := pngBytes(t, 16, 8)
	inspector := NewInspector(0, 0)

	result, err := inspector.Inspect(Upload{Reader: bytes.NewReader(data), Size: int64(len(data)), FileName: "bromo.jpg", ContentType: "image/jpeg"})
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.ContentType != "image/png" {
		t.Fatalf("expected sniffed content type image/png, got %s", result.ContentType)
	}
	if result.Extension != ".png" {
		t.Fatalf("expected .png extension, got %s", result.Extension)
	}
	if result.Width != 16 || result.Height != 8 {
		t.Fatalf("unexpected dimensions %dx%d", result.Width, result.Height)
	}
}

func TestInspectorRejectsOversizedDimensions(t *testing.T) {
	data := pngBytes(t, 64, 10)
	inspector := NewInspector(0, 32)

	_, err := inspector.Inspect(Upload{Reader: bytes.NewReader(data)})
	if !errors.Is(err, ErrImageDimensions) {
		t.Fatalf("expected ErrImageDimensions, got %v", err)
	}
}

func TestInspectorRejectsLargePayload(t *testing.T) {
	data := pngBytes(t, 16, 16)
	inspector := NewInspector(int64(len(data)-1), 0)

	_, err := inspector.Inspect(Upload{Reader: bytes.NewReader(data)})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestInspectorRejectsNonImage(t *testing.T) {
	inspector := NewInspector(0, 0)

	_, err := inspector.Inspect(Upload{Reader: strings.NewReader("not an image")})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	_, err = inspector.Inspect(Upload{Reader: strings.NewReader("")})
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}
