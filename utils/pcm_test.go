// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"slices"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"max positive", 1, math.MaxInt16},
		{"max negative", -1, math.MinInt16},
		{"half positive", 0.5, 16384},
		{"half negative", -0.5, -16384},
		{"small positive", 0.001, 33},
		{"small negative", -0.001, -33},
		{"clamp over max", 1.5, math.MaxInt16},
		{"clamp under min", -1.5, math.MinInt16},
		{"clamp way over max", 100, math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.2)
	for i := -1200; i <= 1200; i++ {
		got := Float32ToInt16(float32(i) / 1000)
		if got < prev {
			t.Fatalf("Float32ToInt16(%v) = %d, below previous %d", float32(i)/1000, got, prev)
		}
		prev = got
	}
}

func TestInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []int16{math.MinInt16, -16384, -1, 0, 1, 12345, math.MaxInt16} {
		if got := Float32ToInt16(Int16ToFloat32(s)); got != s {
			t.Errorf("round trip of %d = %d", s, got)
		}
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s, depth int
		want     float32
	}{
		{-128, 8, -1},
		{64, 8, 0.5},
		{-32768, 16, -1},
		{1 << 22, 24, 0.5},
		{-(1 << 31), 32, -1},
	}

	for _, tt := range tests {
		if got := IntToFloat32(tt.s, tt.depth); got != tt.want {
			t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.s, tt.depth, got, tt.want)
		}
	}
}

func TestDeinterleave(t *testing.T) {
	t.Parallel()

	src := []float32{1, -1, 2, -2, 3, -3, 4}
	dst := [][]float64{make([]float64, 8), make([]float64, 8)}

	frames := Deinterleave(dst, src)
	if frames != 3 {
		t.Fatalf("Deinterleave() = %d frames, want 3", frames)
	}
	if !slices.Equal(dst[0][:3], []float64{1, 2, 3}) || !slices.Equal(dst[1][:3], []float64{-1, -2, -3}) {
		t.Errorf("Deinterleave() = %v", dst)
	}
}

func TestDeinterleave_LimitedByDestination(t *testing.T) {
	t.Parallel()

	dst := [][]float64{make([]float64, 2)}
	if frames := Deinterleave(dst, []float32{1, 2, 3, 4}); frames != 2 {
		t.Errorf("Deinterleave() = %d frames, want 2", frames)
	}
	if frames := Deinterleave(nil, []float32{1}); frames != 0 {
		t.Errorf("Deinterleave(nil) = %d frames, want 0", frames)
	}
}

func TestInterleave(t *testing.T) {
	t.Parallel()

	src := [][]float64{{1, 2, 3}, {-1, -2, -3}}
	dst := make([]float32, 6)

	if n := Interleave(dst, src, 2); n != 4 {
		t.Fatalf("Interleave() = %d, want 4", n)
	}
	if !slices.Equal(dst, []float32{1, -1, 2, -2, 0, 0}) {
		t.Errorf("Interleave() = %v", dst)
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	samples := make([]float32, 4096)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) * 0.01))
	}
	out := make([]int16, len(samples))

	b.ReportAllocs()
	for b.Loop() {
		for i, s := range samples {
			out[i] = Float32ToInt16(s)
		}
	}
}
