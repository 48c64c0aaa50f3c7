package main

// CRC-32 (IEEE, reflected) and Adler-32, written out by hand so the encoder
// path does not depend on hash/crc32 or hash/adler32.

const (
	crcPolynomial = 0xEDB88320
	adlerBase     = 65521 // largest prime smaller than 65536
)

// crcTable is filled once at package init and only read afterwards.
var crcTable = makeCRCTable()

func makeCRCTable() *[256]uint32 {
	t := new([256]uint32)
	for i := range t {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = crcPolynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}

// updateCRC feeds p into a running (pre-inverted) CRC register.
func updateCRC(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

// crc32Sum returns the CRC-32 of the concatenation of parts.
// The PNG chunk CRC covers type+payload, which live in separate slices.
func crc32Sum(parts ...[]byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, p := range parts {
		crc = updateCRC(crc, p)
	}
	return crc ^ 0xFFFFFFFF
}

// adler32Sum returns the Adler-32 checksum of p.
func adler32Sum(p []byte) uint32 {
	a, b := uint32(1), uint32(0)
	for _, c := range p {
		a = (a + uint32(c)) % adlerBase
		b = (b + a) % adlerBase
	}
	return b<<16 | a
}
