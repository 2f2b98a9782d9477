// Package snapshot encodes rendered frames to image files.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
)

// Format selects the output encoding.
type Format uint8

const (
	FormatPNG Format = iota + 1
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

var ErrUnknownFormat = errors.New("snapshot: unknown format")

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img == nil {
		return errors.New("snapshot: nil image")
	}
	switch f {
	case FormatPNG:
		return gg.NewContextForImage(img).EncodePNG(w)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
}

// Save writes img to path, choosing the encoder by extension.
func Save(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(out, 64*1024)
	if err := Encode(bw, img, f); err != nil {
		out.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
