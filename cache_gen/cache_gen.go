package main

import (
	"fmt"
	"go/format"
	"math"
	"os"

	"github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Writes the initial state, per-step rotation amounts, and per-step additive constants of MD5 to a
// Go source file in the md5 package.

var shifts = [4][4]uint32{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
}

func main() {
	out := pflag.StringP("output", "o", "consts.go", "file to write")
	pflag.Parse()

	src, err := render()
	if err != nil {
		fmt.Println("Failed: generated source does not parse:", err)
		os.Exit(1)
	}
	if err = os.WriteFile(*out, src, 0666); err != nil {
		fmt.Println("Failed: could not write " + *out + ".")
		os.Exit(1)
	}
	fmt.Println(len(src), "bytes written successfully to", *out)
}

// render returns the gofmt-ed source of consts.go.
func render() ([]byte, error) {
	str := "// Code generated by cache_gen; DO NOT EDIT.\n\n" +
		"package md5\n\n" +
		"const (\n" +
		"\tinit0 = 0x67452301\n" +
		"\tinit1 = 0xefcdab89\n" +
		"\tinit2 = 0x98badcfe\n" +
		"\tinit3 = 0x10325476\n" +
		")\n"

	str += "\n/* Left-rotation amount of each step; every round repeats its own four. */\n" +
		"var shifts = [64]uint32{\n"
	/* range resets i each pass, so the increment below only shifts it to 1-based. */
	for i := range [64]struct{}{} {
		switch i++; {
		case i%16 == 0:
			str += fmt.Sprintf("%d,\n", shifts[(i-1)>>4][(i-1)&3])
		case i%16 == 1:
			str += fmt.Sprintf("\t%d, ", shifts[(i-1)>>4][(i-1)&3])
		default:
			str += fmt.Sprintf("%d, ", shifts[(i-1)>>4][(i-1)&3])
		}
	}
	str += "}\n"

	str += "\n/* Integer part of 2^32 * |sin(i+1)|, i in radians, for each step i. */\n" +
		"var sines = [64]uint32{\n"
	for i := range [64]struct{}{} {
		switch i++; {
		case i%8 == 0:
			str += fmt.Sprintf("0x%08x,\n", sine(i-1))
		case i%8 == 1:
			str += fmt.Sprintf("\t0x%08x, ", sine(i-1))
		default:
			str += fmt.Sprintf("0x%08x, ", sine(i-1))
		}
	}
	str += "}\n"

	return format.Source([]byte(str))
}

func sine(i int) uint32 {
	return uint32(math.Floor(math.Abs(math.Sin(float64(i+1))) * (1 << 32)))
}
