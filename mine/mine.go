package mine

import (
	"context"
	"errors"
	"math"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/p7r0x7/md5"
	"golang.org/x/sync/errgroup"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This package searches for the smallest decimal suffix whose MD5 digest, taken over a secret
// prefix and that suffix, begins with a given number of zero hexadecimal nibbles.

const (
	part1Zeros, part2Zeros = 5, 6
	/* Candidates tried between context checks in SearchParallel. */
	pollEvery = 1 << 12
)

// Match reports whether the hexadecimal rendering of d begins with zeros '0' nibbles. zeros must
// be between 1 and 32; anything else panics.
func Match(d md5.Digest, zeros int) bool {
	checkZeros(zeros)
	return d.LeadingZeros() >= zeros
}

func checkZeros(zeros int) {
	if zeros < 1 || zeros > md5.Size<<1 {
		panic("mine: zero nibble count must be between 1 and 32")
	}
}

// ErrExhausted is returned when no suffix from start through 2^64-1 matches.
var ErrExhausted = errors.New("mine: no matching suffix below 2^64")

// Search returns the smallest n >= start for which the digest of prefix followed by n in decimal
// begins with zeros '0' nibbles, or ErrExhausted once every uint64 from start has been tried.
func Search(prefix string, start uint64, zeros int) (uint64, error) {
	checkZeros(zeros)
	buf := make([]byte, len(prefix), len(prefix)+20)
	copy(buf, prefix)

	for n := start; ; n++ {
		if md5.Sum(strconv.AppendUint(buf, n, 10)).LeadingZeros() >= zeros {
			log.Debugf("Found %q%d after %d candidates", prefix, n, n-start+1)
			return n, nil
		}
		if n == math.MaxUint64 {
			return 0, ErrExhausted
		}
	}
}

// SearchParallel returns the same result as Search, spreading candidates over workers goroutines
// (all CPUs when workers < 1). Worker w tries start+w, start+w+workers, and so on; each stops once
// its next candidate exceeds the smallest match found so far, so the smallest match always wins.
func SearchParallel(ctx context.Context, prefix string, start uint64, zeros, workers int) (uint64, error) {
	checkZeros(zeros)
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	/* best is only meaningful once found is set; it is written first. */
	best, found := uint64(math.MaxUint64), uint32(0)
	stride := uint64(workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := uint64(w)
		g.Go(func() error {
			n := start + w
			if n < start {
				return nil /* Wrapped: nothing left for this worker. */
			}
			buf := make([]byte, len(prefix), len(prefix)+20)
			copy(buf, prefix)
			for i := 0; ; i++ {
				if atomic.LoadUint32(&found) == 1 && n >= atomic.LoadUint64(&best) {
					return nil
				}
				if i%pollEvery == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				if md5.Sum(strconv.AppendUint(buf, n, 10)).LeadingZeros() >= zeros {
					for old := atomic.LoadUint64(&best); n <= old; old = atomic.LoadUint64(&best) {
						if atomic.CompareAndSwapUint64(&best, old, n) {
							log.Tracef("Worker %d matched %d", w, n)
							break
						}
					}
					atomic.StoreUint32(&found, 1)
					return nil
				}
				if n > math.MaxUint64-stride {
					return nil
				}
				n += stride
			}
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if found == 0 {
		return 0, ErrExhausted
	}
	log.Debugf("Found %q%d using %d workers", prefix, best, workers)
	return best, nil
}

// Solve answers both parts of the AdventCoin puzzle for the secret key in input: the lowest suffix
// giving five leading zero nibbles, then the lowest giving six. Part two resumes from part one's
// answer, since any six-zero match is also a five-zero match.
func Solve(input string) (part1, part2 uint64, err error) {
	key := strings.TrimSpace(input)
	if part1, err = Search(key, 0, part1Zeros); err != nil {
		return 0, 0, err
	}
	if part2, err = Search(key, part1, part2Zeros); err != nil {
		return 0, 0, err
	}
	return part1, part2, nil
}

// SolveParallel is Solve using SearchParallel for each part.
func SolveParallel(ctx context.Context, input string, workers int) (part1, part2 uint64, err error) {
	key := strings.TrimSpace(input)
	if part1, err = SearchParallel(ctx, key, 0, part1Zeros, workers); err != nil {
		return 0, 0, err
	}
	if part2, err = SearchParallel(ctx, key, part1, part2Zeros, workers); err != nil {
		return 0, 0, err
	}
	return part1, part2, nil
}
