// clockpixel renders a 1x1 PNG whose color follows the time of day.
// The PNG writer below is self-contained: chunk framing, zlib stored block,
// CRC-32 and Adler-32 are all done by hand.

package main

import (
	"encoding/binary"
	"errors"
	"image/color"
)

const (
	pngSignature = "\x89PNG\r\n\x1a\n"

	chunkIHDR = "IHDR"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"

	// length(4) + type(4) + crc(4)
	chunkOverhead = 12

	ihdrLen = 13
	// filter byte + RGBA
	scanlineLen = 1 + 4
	idatLen     = scanlineLen + zlibStoredOverhead

	// EncodedSize is the length of every image produced by Encode.
	EncodedSize = len(pngSignature) +
		chunkOverhead + ihdrLen +
		chunkOverhead + idatLen +
		chunkOverhead
)

// IHDR fields after width and height.
const (
	bitDepth8          = 8
	colorTypeRGBA      = 6
	compressionDeflate = 0
	filterAdaptive     = 0
	interlaceNone      = 0

	filterNone = 0
)

// Encode returns a complete PNG holding a single 8-bit RGBA pixel.
//
// The result is always EncodedSize bytes long and depends only on c.
// Every call returns a fresh slice.
func Encode(c color.NRGBA) []byte {
	out := make([]byte, 0, EncodedSize)

	out = append(out, pngSignature...)

	// -------------------------------------------------------------------------
	// IHDR
	// -------------------------------------------------------------------------
	var ihdr [ihdrLen]byte
	binary.BigEndian.PutUint32(ihdr[0:4], 1) // width
	binary.BigEndian.PutUint32(ihdr[4:8], 1) // height
	ihdr[8] = bitDepth8
	ihdr[9] = colorTypeRGBA
	ihdr[10] = compressionDeflate
	ihdr[11] = filterAdaptive
	ihdr[12] = interlaceNone
	out = appendChunk(out, chunkIHDR, ihdr[:])

	// -------------------------------------------------------------------------
	// IDAT: one scanline, filter byte first.
	// -------------------------------------------------------------------------
	scanline := [scanlineLen]byte{filterNone, c.R, c.G, c.B, c.A}
	var idat [idatLen]byte
	out = appendChunk(out, chunkIDAT, appendZlibStored(idat[:0], scanline[:]))

	// -------------------------------------------------------------------------
	// IEND
	// -------------------------------------------------------------------------
	out = appendChunk(out, chunkIEND, nil)

	return out
}

// appendChunk frames data as a PNG chunk of type typ and appends it to dst.
// The CRC covers the type and the data, not the length.
func appendChunk(dst []byte, typ string, data []byte) []byte {
	if len(typ) != 4 {
		panic("clockpixel: chunk type must be 4 bytes")
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(data)))
	dst = append(dst, typ...)
	dst = append(dst, data...)
	return binary.BigEndian.AppendUint32(dst, crc32Sum([]byte(typ), data))
}

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	ErrInvalidTime         = errors.New("clockpixel: invalid time")
	ErrInvalidColor        = errors.New("clockpixel: invalid color")
	ErrInvalidFormat       = errors.New("clockpixel: invalid format")
	ErrInvalidAlpha        = errors.New("clockpixel: alpha must be between 0 and 255")
	ErrStoredBlockTooLarge = errors.New("clockpixel: stored block exceeds 65535 bytes")
	ErrBadChunk            = errors.New("clockpixel: malformed chunk")
)
