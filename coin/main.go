package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/p7r0x7/md5"
	"github.com/p7r0x7/md5/mine"
	"github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This program mines AdventCoins: for each secret prefix given, it prints the lowest decimal suffix
// whose MD5 digest begins with the requested number of zero nibbles.

const success, failure, invalid = 0, 1, 2

func main() { os.Exit(program()) }

func program() int {
	pHelp := pflag.BoolP("help", "h", false, "print this help menu")
	pJobs := pflag.IntP("jobs", "j", 0, "worker goroutines (default all CPUs)")
	pParts := pflag.Bool("parts", false, "solve both puzzle parts: 5 zeros, then 6 from that answer")
	pStart := pflag.Uint64P("start", "s", 0, "lowest suffix to try")
	pTimeout := pflag.Duration("timeout", 0, "give up after this long (default never)")
	pVerbose := pflag.BoolP("verbose", "v", false, "log search progress")
	pZeros := pflag.IntP("zeros", "z", 5, "leading zero nibbles required (1-32)")
	pflag.CommandLine.SortFlags = false
	pflag.Parse()

	if *pHelp || pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage:\n  coin [-j <int>] [-s <uint>] [-z <int>] [--timeout <dur>] [-v] -|PREFIX...\n"+
			"  coin --parts [-j <int>] [-v] -|PREFIX...\n\nOptions:")
		pflag.PrintDefaults()
		return success
	}
	if *pZeros < 1 || *pZeros > md5.Size<<1 {
		fmt.Fprintln(os.Stderr, "Zero nibble count must be between 1 and 32.")
		return invalid
	}
	setLogLevels("info")
	if *pVerbose {
		setLogLevels("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *pTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *pTimeout)
		defer cancel()
	}

	status := success
	for _, arg := range pflag.Args() {
		prefix, err := readPrefix(arg)
		if err != nil {
			log.Errorf("Cannot read prefix: %v", err)
			status = failure
			continue
		}

		start := time.Now()
		if *pParts {
			part1, part2, err := mine.SolveParallel(ctx, prefix, *pJobs)
			if err != nil {
				log.Errorf("Search for %q stopped: %v", prefix, err)
				return failure
			}
			fmt.Printf("Part 1: %d\nPart 2: %d\n", part1, part2)
		} else {
			suffix, err := mine.SearchParallel(ctx, prefix, *pStart, *pZeros, *pJobs)
			if err != nil {
				log.Errorf("Search for %q stopped: %v", prefix, err)
				return failure
			}
			fmt.Printf("%d  %s%d\n", suffix, prefix, suffix)
		}
		log.Debugf("Mined %q in %v", prefix, time.Since(start).Truncate(time.Millisecond))
	}
	return status
}

// readPrefix returns arg itself, or the trimmed contents of STDIN when arg is "-".
func readPrefix(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", os.Stdin.Name(), err)
	}
	return strings.TrimSpace(string(b)), nil
}
