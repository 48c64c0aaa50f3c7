package main

import (
	"hash/adler32"
	"hash/crc32"
	"testing"
)

func TestCRC32Vectors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		want uint32
	}{
		{name: "empty", in: nil, want: 0},
		{name: "IEND", in: []byte("IEND"), want: 0xAE426082},
		{name: "check", in: []byte("123456789"), want: 0xCBF43926},
		{name: "a", in: []byte("a"), want: 0xE8B7BE43},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := crc32Sum(tc.in); got != tc.want {
				t.Fatalf("crc32Sum(%q) = %#08x, want %#08x", tc.in, got, tc.want)
			}
		})
	}
}

func TestCRC32MatchesStdlib(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i*31 ^ i>>3)
	}
	for _, n := range []int{0, 1, 3, 4, 5, 17, 255, 256, 1000, len(buf)} {
		if got, want := crc32Sum(buf[:n]), crc32.ChecksumIEEE(buf[:n]); got != want {
			t.Errorf("len %d: got %#08x, want %#08x", n, got, want)
		}
	}
}

func TestCRC32Parts(t *testing.T) {
	// Splitting the input must not change the sum.
	whole := crc32Sum([]byte("IDATpayload"))
	split := crc32Sum([]byte("IDAT"), []byte("pay"), nil, []byte("load"))
	if whole != split {
		t.Fatalf("got %#08x for parts, want %#08x", split, whole)
	}
}

func TestCRCTable(t *testing.T) {
	std := crc32.MakeTable(crc32.IEEE)
	for i := range crcTable {
		if crcTable[i] != std[i] {
			t.Fatalf("table[%d] = %#08x, want %#08x", i, crcTable[i], std[i])
		}
	}
	// Building the table twice gives the same result.
	if again := makeCRCTable(); *again != *crcTable {
		t.Fatalf("makeCRCTable is not deterministic")
	}
}

func TestAdler32Vectors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		want uint32
	}{
		{name: "empty", in: nil, want: 1},
		{name: "five zeros", in: make([]byte, 5), want: 0x00050001},
		{name: "Wikipedia", in: []byte("Wikipedia"), want: 0x11E60398},
		{name: "red scanline", in: []byte{0, 255, 0, 0, 255}, want: 0x050001FF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := adler32Sum(tc.in); got != tc.want {
				t.Fatalf("adler32Sum(%v) = %#08x, want %#08x", tc.in, got, tc.want)
			}
		})
	}
}

func TestAdler32MatchesStdlib(t *testing.T) {
	// Long runs of 0xff exercise the modulo reduction.
	buf := make([]byte, 70000)
	for i := range buf {
		buf[i] = 0xff
	}
	for _, n := range []int{0, 1, 5, 5552, 5553, 65535, len(buf)} {
		if got, want := adler32Sum(buf[:n]), adler32.Checksum(buf[:n]); got != want {
			t.Errorf("len %d: got %#08x, want %#08x", n, got, want)
		}
	}
}
