// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// history is a fixed-capacity ring of raw gains addressed by absolute frame index.
type history struct {
	values []float64
	count  uint64 // raw gains pushed so far
}

func newHistory(capacity int) history {
	return history{values: make([]float64, capacity)}
}

func (h *history) push(v float64) {
	h.values[h.count%uint64(len(h.values))] = v
	h.count++
}

// at returns the raw gain of frame idx if it is still held by the ring.
func (h *history) at(idx uint64) (float64, bool) {
	size := uint64(len(h.values))
	if idx >= h.count || idx+size < h.count {
		return 0, false
	}
	return h.values[idx%size], true
}

func (h *history) last() float64 {
	v, _ := h.at(h.count - 1)
	return v
}

// gainSmoother keeps one history per lane and produces, for a frame index,
// a kernel-weighted average of the raw gains centered on that frame.
type gainSmoother struct {
	weights   []float64
	half      int
	lookahead int
	lanes     []history
	window    []float64
}

func newGainSmoother(weights []float64, lanes int) *gainSmoother {
	half := len(weights) / 2
	s := &gainSmoother{
		weights:   weights,
		half:      half,
		lookahead: max(half, 1),
		lanes:     make([]history, lanes),
		window:    make([]float64, len(weights)),
	}
	// a frame is finalized once the raw gain lookahead frames past it is
	// pushed, and needs every raw gain from half frames before it
	for i := range s.lanes {
		s.lanes[i] = newHistory(half + s.lookahead + 1)
	}
	return s
}

// push appends one raw gain per lane.
func (s *gainSmoother) push(raw []float64) {
	for i := range s.lanes {
		s.lanes[i].push(raw[i])
	}
}

// known is the number of raw gains observed per lane.
func (s *gainSmoother) known() uint64 {
	return s.lanes[0].count
}

// ready reports whether frame idx has all the lookahead it needs.
func (s *gainSmoother) ready(idx uint64) bool {
	return s.known() > idx+uint64(s.lookahead)
}

// smooth writes the smoothed gain of frame idx for every lane into dst.
//
// Entries before the stream start are left out and the remaining weights
// renormalized. Entries past the last known raw gain are only legal at end
// of stream (padEnd) and repeat the last raw gain.
//
// The result never exceeds the raw gain of frame idx nor that of frame
// idx+1 when it is known, so neither the frame itself nor the ramp into the
// next frame overshoots the target.
func (s *gainSmoother) smooth(idx uint64, padEnd bool, dst []float64) error {
	lo := 0
	if int(idx) < s.half {
		lo = s.half - int(idx)
	}

	for l := range s.lanes {
		h := &s.lanes[l]

		for j := lo; j < len(s.weights); j++ {
			pos := idx + uint64(j) - uint64(s.half)
			v, ok := h.at(pos)
			switch {
			case ok:
			case pos >= h.count && padEnd && h.count > 0:
				v = h.last()
			default:
				return fmt.Errorf("%w: raw gain %d unavailable (known %d, smoothing %d)",
					ErrInternalInvariant, pos, h.count, idx)
			}
			s.window[j] = v
		}

		w := s.weights[lo:]
		avg := vecmath.DotProduct(w, s.window[lo:]) / vecmath.Sum(w)

		own, _ := h.at(idx)
		avg = math.Min(avg, own)
		if next, ok := h.at(idx + 1); ok {
			avg = math.Min(avg, next)
		}

		dst[l] = avg
	}

	return nil
}
