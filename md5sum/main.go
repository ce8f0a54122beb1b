package main

import (
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p7r0x7/md5"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure = 0, 1

var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "md5sum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "A from-scratch MD5 for fast, non-cryptographic checksums.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bt] [--quiet|no-codes] [--strict|raw] -|PATH..."+n,
		spaces, "[-bt] [--quiet|no-codes] [--strict|raw] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// This program is a command-line interface for md5: It handles various flags and an unlimited
// number of arguments, reading each target whole and printing its digest.
func program() int {
	parseFlags()
	if pDebug {
		p, err := profile(".")
		if err != nil {
			panic(err)
		}
		defer func() {
			if err := p.stop(); err != nil {
				panic(err)
			}
		}()
	}

	if pHelp || NArg() == 0 {
		help()
		return success
	}

	stdinUsed := false
	for _, target := range Args() {
		start, delta := time.Now(), ""

		var msg []byte
		var err error
		switch {
		case pString:
			msg = []byte(target)
		case target == "-" || target == os.Stdin.Name():
			if stdinUsed {
				/* STDIN should not be reused. */
				warn(Errorf("%s already consumed", os.Stdin.Name()))
				continue
			}
			msg, err = io.ReadAll(os.Stdin)
			stdinUsed = true
		default:
			msg, err = os.ReadFile(target)
		}
		if err != nil {
			warn(err)
			continue
		}
		digest := md5.Sum(msg)

		if pTime {
			d := time.Since(start)
			if d.Microseconds() > 99 {
				d = d.Truncate(10 * time.Microsecond)
			}
			delta = " (" + d.String() + ")"
		}

		if pRaw {
			os.Stdout.Write(digest[:])
			continue
		}
		str := hex.EncodeToString(digest[:])
		if pBase64 {
			str = base64.StdEncoding.EncodeToString(digest[:])
		}

		switch {
		case pQuiet:
			Print(str, n)
		case pString:
			Print(yell, str, zero, `  "`, target, `"`, delta, n)
		case pNoCodes:
			Print(str, `  `, filepath.Clean(target), delta, n)
		default:
			Print(yell, str, zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	}

	if !(pQuiet || pRaw) {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// profiler holds the files written by --debug.
type profiler struct {
	cpu, allocs *os.File
}

// profile starts CPU profiling into dir/cpu.prof; stop ends it, writes dir/allocs.prof, and closes
// both files.
func profile(dir string) (*profiler, error) {
	cf, err := os.Create(filepath.Join(dir, "cpu.prof"))
	if err != nil {
		return nil, err
	}
	af, err := os.Create(filepath.Join(dir, "allocs.prof"))
	if err != nil {
		cf.Close()
		return nil, err
	}
	if err = pprof.StartCPUProfile(cf); err != nil {
		cf.Close()
		af.Close()
		return nil, err
	}
	return &profiler{cpu: cf, allocs: af}, nil
}

func (p *profiler) stop() error {
	pprof.StopCPUProfile()
	err := pprof.Lookup("allocs").WriteTo(p.allocs, 0)
	for _, f := range [2]*os.File{p.cpu, p.allocs} {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func warn(err error) {
	if pStrict {
		panic(err)
	}
	warnings++
}
