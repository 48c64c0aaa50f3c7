package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/xfmoulet/qoi"
)

// chunk is one PNG chunk as read back from a file.
type chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// readChunks splits a PNG into chunks and checks every CRC.
// Reading stops after IEND; trailing bytes are ignored.
func readChunks(data []byte) ([]chunk, error) {
	if !bytes.HasPrefix(data, []byte(pngSignature)) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrBadChunk)
	}
	rest := data[len(pngSignature):]

	var chunks []chunk
	for len(rest) > 0 {
		if len(rest) < chunkOverhead {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrBadChunk)
		}
		n := binary.BigEndian.Uint32(rest[0:4])
		if uint64(n) > uint64(len(rest)-chunkOverhead) {
			return nil, fmt.Errorf("%w: %q claims %d bytes, %d left", ErrBadChunk, rest[4:8], n, len(rest)-chunkOverhead)
		}
		end := 8 + int(n)
		c := chunk{
			Type: string(rest[4:8]),
			Data: rest[8:end],
			CRC:  binary.BigEndian.Uint32(rest[end : end+4]),
		}
		if want := crc32Sum(rest[4:8], c.Data); c.CRC != want {
			return nil, fmt.Errorf("%w: %s crc %08x, computed %08x", ErrBadChunk, c.Type, c.CRC, want)
		}
		chunks = append(chunks, c)
		rest = rest[end+4:]
		if c.Type == chunkIEND {
			break
		}
	}
	return chunks, nil
}

// inflateIDAT joins the IDAT payloads and inflates them.
// It returns the raw scanlines and the Adler-32 stored in the stream trailer.
func inflateIDAT(chunks []chunk) ([]byte, uint32, error) {
	var z []byte
	for _, c := range chunks {
		if c.Type == chunkIDAT {
			z = append(z, c.Data...)
		}
	}
	if len(z) < 6 {
		return nil, 0, fmt.Errorf("%w: IDAT stream too short (%d bytes)", ErrBadChunk, len(z))
	}

	zr, err := zlib.NewReader(bytes.NewReader(z))
	if err != nil {
		return nil, 0, err
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, 0, err
	}
	return raw, binary.BigEndian.Uint32(z[len(z)-4:]), nil
}

// inspect decodes data in format f and writes a short report to w.
func inspect(w io.Writer, data []byte, f Format) error {
	var (
		img image.Image
		err error
	)
	switch f {
	case FormatQOI:
		img, err = qoi.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
	default:
		chunks, err := readChunks(data)
		if err != nil {
			return err
		}
		for _, c := range chunks {
			fmt.Fprintf(w, "chunk %s len=%d crc=%08x\n", c.Type, len(c.Data), c.CRC)
		}
		raw, sum, err := inflateIDAT(chunks)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "idat raw=% x adler32=%08x (computed %08x)\n", raw, sum, adler32Sum(raw))

		img, err = png.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
	}

	b := img.Bounds()
	px := color.NRGBAModel.Convert(img.At(b.Min.X, b.Min.Y)).(color.NRGBA)
	fmt.Fprintf(w, "%s %dx%d pixel(0,0)=#%s alpha=%d\n", f, b.Dx(), b.Dy(), hexString(px), px.A)
	return nil
}
