package main

import (
	stdmd5 "crypto/md5"
	. "fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/dterei/gotsc"
	"github.com/klauspost/cpuid/v2"
	md5simd "github.com/minio/md5-simd"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/md5"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var sizes = [...]int{64, 512 << 10, 64 << 20}
var bytes, calltime = []byte(nil), gotsc.TSCOverhead()

func BenchmarkMD5(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		md5.Sum(bytes)
	}
}

func BenchmarkStdMD5(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		stdmd5.Sum(bytes)
	}
}

func BenchmarkMD5SIMD(b *testing.B) {
	server := md5simd.NewServer()
	defer server.Close()
	h := server.NewHash()
	defer h.Close()
	sum := make([]byte, 0, md5.Size)
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		h.Reset()
		h.Write(bytes)
		h.Sum(sum[:0])
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		sha256.Sum256(bytes)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		blake3.Sum256(bytes)
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		xxh3.Hash128(bytes)
	}
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		bytes = stream(v)

		totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		mut.Unlock()
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

func main() {
	Printf("Running Statz on %s (%d CPUs)!\n%s/%s\n\n",
		cpuid.CPU.BrandName, runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	monobit()
	Println(" ============================================= ")
	Println("           64B      512K       64M")

	for _, alg := range []struct {
		name string
		fn   func(b *testing.B)
	}{
		{"github.com/p7r0x7/md5", BenchmarkMD5},
		{"crypto/md5", BenchmarkStdMD5},
		{"github.com/minio/md5-simd", BenchmarkMD5SIMD},
		{"github.com/minio/sha256-simd", BenchmarkSHA256},
		{"github.com/zeebo/blake3", BenchmarkBlake3},
		{"github.com/zeebo/xxh3", BenchmarkXXH3},
	} {
		Println(alg.name)
		benchAlg(alg.fn)
	}

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
