package main

import (
	"encoding/binary"
	. "fmt"

	"github.com/aead/chacha20/chacha"
	"github.com/p7r0x7/md5"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

/* A single ChaCha20 keystream feeds every pseudo-random message, so runs are reproducible. */
var keystream, _ = chacha.NewCipher(make([]byte, 8), make([]byte, 32), 20)

func stream(size int) []byte {
	b := make([]byte, size)
	keystream.XORKeyStream(b, b)
	return b
}

// meanBias returns the mean deviation, as a percentage of half the sample count, of how often each
// digest bit was set across digests.
func meanBias(digests []md5.Digest) float64 {
	var tally [md5.Size << 3]int64
	for _, d := range digests {
		for i := range tally {
			tally[i] += int64(d[i>>3] >> (i & 7) & 1)
		}
	}
	half := int64(len(digests) >> 1)
	var total int64
	for _, v := range tally {
		if v -= half; v < 0 {
			v = -v
		}
		total += v
	}
	return float64(total) / float64(len(tally)) / float64(half) * 100
}

func monobit() {
	integers, random := make([]md5.Digest, ints), make([]md5.Digest, ints)
	iBytes := make([]byte, 4)
	for i := range integers {
		binary.BigEndian.PutUint32(iBytes, uint32(i))
		integers[i] = md5.Sum(iBytes)
		random[i] = md5.Sum(stream(1024))
	}
	Printf("Integer input Monobit test:  %5.3f%%\n", meanBias(integers))
	Printf("Random input Monobit test:   %5.3f%%\n", meanBias(random))
}
