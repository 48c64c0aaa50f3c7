package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
)

// Format selects the image container written for a pixel.
type Format uint8

const (
	FormatPNG Format = iota
	FormatQOI
)

func (f Format) String() string {
	switch f {
	case FormatQOI:
		return "qoi"
	default:
		return "png"
	}
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatQOI:
		return "image/qoi"
	default:
		return "image/png"
	}
}

// parseFormat maps the "f" query value; empty means PNG.
func parseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "qoi":
		return FormatQOI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// formatForPath picks the format from a file extension.
func formatForPath(path string) (Format, error) {
	return parseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// EncodeQOI returns a 1x1 QOI image holding c.
func EncodeQOI(c color.NRGBA) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)

	var b bytes.Buffer
	if err := qoi.Encode(&b, img); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// encodeAs encodes c in format f.
func encodeAs(f Format, c color.NRGBA) ([]byte, error) {
	switch f {
	case FormatQOI:
		return EncodeQOI(c)
	default:
		return Encode(c), nil
	}
}
