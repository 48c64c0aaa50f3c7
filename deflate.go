package main

import (
	"encoding/binary"
	"fmt"
)

// zlib framing for a single stored (uncompressed) deflate block.
const (
	zlibCMF        = 0x78 // deflate, 32K window
	zlibFLG        = 0x01 // no preset dictionary, (CMF<<8|FLG)%31 == 0
	storedFinal    = 0x01 // BFINAL=1, BTYPE=00
	maxStoredBlock = 0xFFFF

	// header(2) + block header(1) + LEN(2) + NLEN(2) + adler32(4)
	zlibStoredOverhead = 11
)

// zlibStored wraps raw in a zlib stream made of one final stored block.
//
// Layout:
//
//	78 01 | 01 | LEN (LE) | ^LEN (LE) | raw | adler32(raw) (BE)
//
// A stored block carries at most 65535 bytes; larger inputs are rejected.
func zlibStored(raw []byte) ([]byte, error) {
	if len(raw) > maxStoredBlock {
		return nil, fmt.Errorf("%w: %d bytes", ErrStoredBlockTooLarge, len(raw))
	}
	return appendZlibStored(make([]byte, 0, len(raw)+zlibStoredOverhead), raw), nil
}

// appendZlibStored is zlibStored for callers that already know len(raw) fits.
func appendZlibStored(dst, raw []byte) []byte {
	n := uint16(len(raw))

	dst = append(dst, zlibCMF, zlibFLG, storedFinal)
	dst = binary.LittleEndian.AppendUint16(dst, n)
	dst = binary.LittleEndian.AppendUint16(dst, ^n)
	dst = append(dst, raw...)
	dst = binary.BigEndian.AppendUint32(dst, adler32Sum(raw))
	return dst
}
