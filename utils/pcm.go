// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample format conversions shared by the decoders, the
// pipeline stages and the writers.
package utils

import "math"

// Float32ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clamping values
// outside the range. The asymmetric scale maps -1 to math.MinInt16 and 1 to
// math.MaxInt16.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return math.MaxInt16
	case x <= -1:
		return math.MinInt16
	case x < 0:
		return int16(math.Round(float64(x) * 32768))
	}
	return int16(math.Round(float64(x) * 32767))
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(s int16) float32 {
	if s < 0 {
		return float32(s) / 32768
	}
	return float32(s) / 32767
}

// IntToFloat32 scales a signed PCM sample of the given bit depth to [-1, 1].
func IntToFloat32(s, bitDepth int) float32 {
	full := float32(int64(1) << (bitDepth - 1))
	return float32(s) / full
}

// Deinterleave splits frames of interleaved samples into planar channels.
// It copies min(len(src)/len(dst), len(dst[c])) frames and returns that count.
func Deinterleave(dst [][]float64, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}

	frames := len(src) / channels
	for c := range dst {
		frames = min(frames, len(dst[c]))
	}

	for c, plane := range dst {
		for f := range frames {
			plane[f] = float64(src[f*channels+c])
		}
	}
	return frames
}

// Interleave writes the first frames samples of every planar channel into
// dst, which must hold frames*len(src) values. It returns the number of
// values written.
func Interleave(dst []float32, src [][]float64, frames int) int {
	channels := len(src)
	for c, plane := range src {
		for f, v := range plane[:frames] {
			dst[f*channels+c] = float32(v)
		}
	}
	return frames * channels
}
