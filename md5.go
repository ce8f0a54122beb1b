package md5

import "encoding/hex"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file is a from-scratch Go implementation of the MD5 message-digest algorithm as published in
// RFC 1321. MD5 is broken as a cryptographic hash; here it serves as a fast, well-known workload.

//go:generate go run ./cache_gen -o consts.go

const (
	Size      = 16
	BlockSize = 64
	/* The bit length of any longer message no longer fits in the 64-bit length field. */
	maxBytes uint64 = 1<<61 - 1
)

// Digest is the 16-byte output of Sum: the four state words A, B, C and D, each little-endian.
type Digest [Size]byte

// String renders d as 32 lowercase hexadecimal characters.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// LeadingZeros reports how many leading nibbles of d's hexadecimal rendering are '0'.
func (d Digest) LeadingZeros() int {
	for i, b := range d {
		switch {
		case b == 0:
			continue
		case b < 0x10:
			return i<<1 + 1
		default:
			return i << 1
		}
	}
	return Size << 1
}

// Sum returns the MD5 digest of msg. It never fails, never retains msg, and is safe for concurrent
// use on any inputs.
func Sum(msg []byte) Digest {
	s := [4]uint32{init0, init1, init2, init3}
	for p := pad(msg); len(p) > 0; p = p[BlockSize:] {
		block(&s, p[:BlockSize])
	}

	var d Digest
	for i, v := range s {
		/* Little-endian byte order */
		d[0+i<<2] = byte(v)
		d[1+i<<2] = byte(v >> 8)
		d[2+i<<2] = byte(v >> 16)
		d[3+i<<2] = byte(v >> 24)
	}
	return d
}

// SumString is Sum for callers holding a string.
func SumString(s string) Digest { return Sum([]byte(s)) }

// pad frames msg as RFC 1321 requires: a single 0x80 byte, zeroes up to 56 mod 64, then the
// message's bit length as a little-endian uint64. The result is always a nonzero multiple of
// BlockSize in length.
func pad(msg []byte) []byte {
	if uint64(len(msg)) > maxBytes {
		panic("md5: message length exceeds 2^61-1 bytes")
	}
	ln := uint64(len(msg)) << 3

	n := len(msg) + 1 + 8
	n += (BlockSize - n%BlockSize) % BlockSize
	p := make([]byte, n)
	copy(p, msg)
	p[len(msg)] = 0x80
	for i := 0; i < 8; i++ {
		p[n-8+i] = byte(ln >> (i << 3))
	}
	return p
}
