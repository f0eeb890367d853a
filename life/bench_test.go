package life

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkRun(b *testing.B, size, turns int) {
	initial := randomBoard(size, size, 42)
	for threads := 1; threads <= 16; threads++ {
		p := Params{
			Turns:       turns,
			Threads:     threads,
			ImageWidth:  size,
			ImageHeight: size,
		}
		name := fmt.Sprintf("%dx%dx%d-%d", p.ImageWidth, p.ImageHeight, p.Turns, p.Threads)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				events := make(chan Event)
				go Run(context.Background(), p, initial, events, nil)
				for range events {
				}
			}
		})
	}
}

func Benchmark_128_1000(b *testing.B) {
	benchmarkRun(b, 128, 1000)
}

func Benchmark_256_250(b *testing.B) {
	benchmarkRun(b, 256, 250)
}

func Benchmark_512_50(b *testing.B) {
	benchmarkRun(b, 512, 50)
}
