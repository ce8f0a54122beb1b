package mine

import (
	"context"
	"errors"
	"flag"
	"math"
	"os"
	"strconv"
	"testing"

	"github.com/decred/slog"
	"github.com/p7r0x7/md5"
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Verbose() {
		logger := slog.NewBackend(os.Stderr).Logger("MINE")
		logger.SetLevel(slog.LevelTrace)
		UseLogger(logger)
	}
	os.Exit(m.Run())
}

func TestSearch(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		prefix string
		want   uint64
	}{
		{"abcdef", 609043},
		{"pqrstuv", 1048970},
	} {
		got, err := Search(tc.prefix, 0, 5)
		if err != nil || got != tc.want {
			t.Errorf("Search(%q) = %d, want %d", tc.prefix, got, tc.want)
		}
		if d := md5.SumString(tc.prefix + strconv.FormatUint(got, 10)); d.String()[:5] != "00000" {
			t.Errorf("digest %s of the answer lacks five zeros", d)
		}
	}
}

func TestSearch_Start(t *testing.T) {
	t.Parallel()
	if got, _ := Search("abcdef", 609043, 5); got != 609043 {
		t.Errorf("Search from the answer itself = %d, want 609043", got)
	}
	if got, _ := Search("abcdef", 609044, 5); got <= 609043 || !Match(md5.SumString("abcdef"+strconv.FormatUint(got, 10)), 5) {
		t.Errorf("Search past the answer = %d, want a later match", got)
	}
}

func TestSearchParallel(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{0, 1, 3, 8} {
		got, err := SearchParallel(context.Background(), "abcdef", 0, 5, workers)
		if err != nil {
			t.Fatal(err)
		}
		if got != 609043 {
			t.Errorf("SearchParallel(%d workers) = %d, want 609043", workers, got)
		}
	}
	got, err := SearchParallel(context.Background(), "pqrstuv", 0, 5, 4)
	if err != nil || got != 1048970 {
		t.Errorf("SearchParallel(pqrstuv) = %d, %v, want 1048970", got, err)
	}
}

func TestSearchParallel_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	/* Thirty-two zeros will never be found; only cancellation ends the search. */
	_, err := SearchParallel(ctx, "abcdef", 0, 32, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SearchParallel on a canceled context returned %v", err)
	}
}

func TestSearch_TopOfRange(t *testing.T) {
	t.Parallel()
	/* Thirty-two zeros never match, so every search must run out at 2^64-1 instead of wrapping. */
	for _, start := range []uint64{math.MaxUint64, math.MaxUint64 - 5} {
		if n, err := Search("abcdef", start, 32); err != ErrExhausted {
			t.Errorf("Search from %d = %d, %v, want ErrExhausted", start, n, err)
		}
		for _, workers := range []int{1, 3, 8} {
			n, err := SearchParallel(context.Background(), "abcdef", start, 32, workers)
			if err != ErrExhausted {
				t.Errorf("SearchParallel(%d workers) from %d = %d, %v, want ErrExhausted", workers, start, n, err)
			}
		}
	}

	/* One zero usually matches within the last hundred candidates; either way nothing may wrap. */
	start := uint64(math.MaxUint64 - 100)
	want, err := Search("pqrstuv", start, 1)
	if err == nil && want < start {
		t.Fatalf("Search wrapped to %d", want)
	}
	got, err2 := SearchParallel(context.Background(), "pqrstuv", start, 1, 7)
	if err2 != err || got != want {
		t.Errorf("SearchParallel = %d, %v, want %d, %v", got, err2, want, err)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()
	d := md5.Digest{0, 0, 0x0f, 0xff}
	if !Match(d, 4) || !Match(d, 5) || Match(d, 6) {
		t.Errorf("Match(%s) disagrees with its leading zeros", d)
	}
	for _, zeros := range []int{0, -1, 33} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Match with %d zeros did not panic", zeros)
				}
			}()
			Match(d, zeros)
		}()
	}
}

func TestSolve(t *testing.T) {
	if testing.Short() {
		t.Skip("six-zero search is slow")
	}
	t.Parallel()
	part1, part2, err := Solve("abcdef\n")
	if err != nil {
		t.Fatal(err)
	}
	if part1 != 609043 {
		t.Errorf("part 1 = %d, want 609043", part1)
	}
	if part2 < part1 || !Match(md5.SumString("abcdef"+strconv.FormatUint(part2, 10)), 6) {
		t.Errorf("part 2 = %d is not a six-zero match after part 1", part2)
	}
	p1, p2, err := SolveParallel(context.Background(), " abcdef ", 0)
	if err != nil || p1 != part1 || p2 != part2 {
		t.Errorf("SolveParallel = %d, %d, %v, want %d, %d", p1, p2, err, part1, part2)
	}
}
