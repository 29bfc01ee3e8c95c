// SPDX-License-Identifier: EPL-2.0

package audiotest

// Planar builds channels slices of n samples from fn.
func Planar(channels, n int, fn func(sample, channel int) float64) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, n)
		for i := range out[c] {
			out[c][i] = fn(i, c)
		}
	}
	return out
}

// PlanarBuffer allocates channels zeroed slices of n samples.
func PlanarBuffer(channels, n int) [][]float64 {
	return Planar(channels, n, func(int, int) float64 { return 0 })
}

// Slice returns the [from, to) window of every channel without copying.
func Slice(buf [][]float64, from, to int) [][]float64 {
	out := make([][]float64, len(buf))
	for c := range buf {
		out[c] = buf[c][from:to]
	}
	return out
}
