package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 0xFF, A: 0xFF})
	return img
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"frame.png", FormatPNG, false},
		{"FRAME.PNG", FormatPNG, false},
		{"out/frame.bmp", FormatBMP, false},
		{"frame.jpg", 0, true},
		{"frame", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("FormatFor(%q) err=%v, want ErrUnknownFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFor(%q)=%v,%v want %v", tt.path, got, err, tt.want)
		}
	}
}

func TestEncodeMagic(t *testing.T) {
	tests := []struct {
		f     Format
		magic []byte
	}{
		{FormatPNG, []byte("\x89PNG")},
		{FormatBMP, []byte("BM")},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testImage(), tt.f); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), tt.magic) {
				t.Fatalf("missing %q header", tt.magic)
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, testImage(), Format(99)); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err=%v, want ErrUnknownFormat", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")
	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("BM")) {
		t.Fatal("not a bmp")
	}

	if err := Save(filepath.Join(t.TempDir(), "frame.gif"), testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err=%v, want ErrUnknownFormat", err)
	}
}
