package md5

import "math/bits"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The compression function: four rounds of sixteen steps over one 64-byte block.

func f(b, c, d uint32) uint32 { return b&c | ^b&d }

func g(b, c, d uint32) uint32 { return b&d | c&^d }

func h(b, c, d uint32) uint32 { return b ^ c ^ d }

func i(b, c, d uint32) uint32 { return c ^ (b | ^d) }

// block folds one BlockSize-byte block p into state s.
func block(s *[4]uint32, p []byte) {
	p = p[:BlockSize] /* Bounds check eliminated. */
	var x [16]uint32
	for j := range x {
		x[j] = uint32(p[j<<2]) | uint32(p[j<<2+1])<<8 | uint32(p[j<<2+2])<<16 | uint32(p[j<<2+3])<<24
	}

	a, b, c, d := s[0], s[1], s[2], s[3]
	for j := 0; j < 64; j++ {
		var mix uint32
		var w int
		switch j >> 4 {
		case 0:
			mix, w = f(b, c, d), j
		case 1:
			mix, w = g(b, c, d), (5*j+1)&15
		case 2:
			mix, w = h(b, c, d), (3*j+5)&15
		default:
			mix, w = i(b, c, d), (7*j)&15
		}
		/* The fresh value enters at B; the old D wraps around to A. */
		a, b, c, d = d, b+bits.RotateLeft32(a+mix+x[w]+sines[j], int(shifts[j])), b, c
	}

	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
}
