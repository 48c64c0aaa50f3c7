package main

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestInspectPNG(t *testing.T) {
	var out bytes.Buffer
	if err := inspect(&out, Encode(color.NRGBA{R: 0xFF, G: 0x90, A: 0x80}), FormatPNG); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	report := out.String()
	for _, want := range []string{
		"chunk IHDR len=13 crc=1f15c489",
		"chunk IDAT len=16",
		"chunk IEND len=0 crc=ae426082",
		"idat raw=00 ff 90 00 80",
		"png 1x1 pixel(0,0)=#FF9000 alpha=128",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestInspectQOI(t *testing.T) {
	data, err := EncodeQOI(color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
	if err != nil {
		t.Fatalf("EncodeQOI: %v", err)
	}
	var out bytes.Buffer
	if err := inspect(&out, data, FormatQOI); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if want := "qoi 1x1 pixel(0,0)=#010203 alpha=255"; !strings.Contains(out.String(), want) {
		t.Fatalf("report missing %q:\n%s", want, out.String())
	}
}

func TestReadChunksRejects(t *testing.T) {
	good := Encode(color.NRGBA{R: 5, G: 6, B: 7, A: 8})

	badCRC := bytes.Clone(good)
	badCRC[iendAt-1] ^= 0x01

	badData := bytes.Clone(good)
	badData[idatAt+8+7] ^= 0x01

	badSig := bytes.Clone(good)
	badSig[1] = 'J'

	for name, data := range map[string][]byte{
		"crc":       badCRC,
		"data":      badData,
		"signature": badSig,
		"truncated": good[:iendAt-2],
		"empty":     nil,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := readChunks(data); !errors.Is(err, ErrBadChunk) {
				t.Fatalf("readChunks err = %v, want %v", err, ErrBadChunk)
			}
		})
	}
}

func TestReadChunksIgnoresTrailer(t *testing.T) {
	data := append(Encode(color.NRGBA{}), "trailing"...)
	chunks, err := readChunks(data)
	if err != nil {
		t.Fatalf("readChunks: %v", err)
	}
	if len(chunks) != 3 || chunks[2].Type != chunkIEND {
		t.Fatalf("got %d chunks, last %q", len(chunks), chunks[len(chunks)-1].Type)
	}
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]Format{"a.png": FormatPNG, "dir/b.QOI": FormatQOI} {
		got, err := formatForPath(path)
		if err != nil || got != want {
			t.Errorf("formatForPath(%q) = %s, %v; want %s", path, got, err, want)
		}
	}
	if _, err := formatForPath("c.gif"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("formatForPath(c.gif) err = %v, want %v", err, ErrInvalidFormat)
	}
}
