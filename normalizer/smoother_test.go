// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"errors"
	"testing"

	"github.com/ik5/audnorm/internal/audiotest"
)

func smootherWith(size int, raw ...float64) *gainSmoother {
	s := newGainSmoother(KernelTriangular.Weights(size), 1)
	for _, r := range raw {
		s.push([]float64{r})
	}
	return s
}

// runSmoother feeds raw gains one at a time and smooths every frame as soon
// as its lookahead is known, padding the tail like a flush does.
func runSmoother(t *testing.T, size int, raw ...float64) []float64 {
	t.Helper()

	s := newGainSmoother(KernelTriangular.Weights(size), 1)
	dst := make([]float64, 1)
	out := make([]float64, 0, len(raw))

	for _, r := range raw {
		s.push([]float64{r})
		for idx := uint64(len(out)); s.ready(idx); idx++ {
			if err := s.smooth(idx, false, dst); err != nil {
				t.Fatalf("smooth(%d) error = %v", idx, err)
			}
			out = append(out, dst[0])
		}
	}
	for idx := uint64(len(out)); idx < uint64(len(raw)); idx++ {
		if err := s.smooth(idx, true, dst); err != nil {
			t.Fatalf("smooth(%d, padded) error = %v", idx, err)
		}
		out = append(out, dst[0])
	}
	return out
}

func TestHistory_RingEviction(t *testing.T) {
	t.Parallel()

	h := newHistory(5)
	for i := range 10 {
		h.push(float64(i))
	}

	if _, ok := h.at(4); ok {
		t.Error("at(4) should have been evicted")
	}
	for i := uint64(5); i < 10; i++ {
		v, ok := h.at(i)
		if !ok || v != float64(i) {
			t.Errorf("at(%d) = %v, %v, want %d, true", i, v, ok, i)
		}
	}
	if _, ok := h.at(10); ok {
		t.Error("at(10) is in the future")
	}
	if h.last() != 9 {
		t.Errorf("last() = %v, want 9", h.last())
	}
}

func TestGainSmoother_Ready(t *testing.T) {
	t.Parallel()

	s := smootherWith(5, 1, 1)
	if s.ready(0) {
		t.Error("ready(0) with 2 raw gains and lookahead 2")
	}
	s.push([]float64{1})
	if !s.ready(0) {
		t.Error("ready(0) = false with 3 raw gains")
	}
	if s.ready(1) {
		t.Error("ready(1) = true with 3 raw gains")
	}
}

func TestGainSmoother_SingleTapWaitsForNextGain(t *testing.T) {
	t.Parallel()

	s := smootherWith(1, 9.5)
	if s.ready(0) {
		t.Error("ready(0) before the next raw gain is known")
	}
	s.push([]float64{0.95})
	if !s.ready(0) {
		t.Fatal("ready(0) = false with the next raw gain known")
	}

	dst := make([]float64, 1)
	if err := s.smooth(0, false, dst); err != nil {
		t.Fatalf("smooth(0) error = %v", err)
	}
	if !audiotest.NearlyEqual(dst[0], 0.95, 1e-12) {
		t.Errorf("smooth(0) = %v, want 0.95", dst[0])
	}
}

func TestGainSmoother_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	got := runSmoother(t, 5, 3, 3, 3, 3, 3, 3, 3, 3)
	for idx, v := range got {
		if !audiotest.NearlyEqual(v, 3, 1e-12) {
			t.Errorf("smoothed[%d] = %v, want 3", idx, v)
		}
	}
}

func TestGainSmoother_StartupRenormalizes(t *testing.T) {
	t.Parallel()

	// weights 1/9 2/9 3/9 2/9 1/9; frame 1 misses the entry before the stream
	s := smootherWith(5, 2, 8, 8, 2)
	dst := make([]float64, 1)
	if err := s.smooth(1, false, dst); err != nil {
		t.Fatalf("smooth(1) error = %v", err)
	}

	// (2*2 + 3*8 + 2*8 + 1*2) / 8
	if !audiotest.NearlyEqual(dst[0], 5.75, 1e-12) {
		t.Errorf("smooth(1) = %v, want 5.75", dst[0])
	}
}

func TestGainSmoother_EndPadsWithLastGain(t *testing.T) {
	t.Parallel()

	s := smootherWith(5, 2, 2, 8)
	dst := make([]float64, 1)
	if err := s.smooth(2, true, dst); err != nil {
		t.Fatalf("smooth(2) error = %v", err)
	}

	// window 2 2 8 [8 8]
	if !audiotest.NearlyEqual(dst[0], 6, 1e-12) {
		t.Errorf("smooth(2) = %v, want 6", dst[0])
	}
}

func TestGainSmoother_MissingLookaheadIsInvariantViolation(t *testing.T) {
	t.Parallel()

	s := smootherWith(5, 1, 1)
	err := s.smooth(1, false, make([]float64, 1))
	if !errors.Is(err, ErrInternalInvariant) {
		t.Errorf("smooth() error = %v, want ErrInternalInvariant", err)
	}
}

func TestGainSmoother_NeverExceedsOwnOrNextRawGain(t *testing.T) {
	t.Parallel()

	raw := []float64{2, 2, 2, 10, 2, 2, 9, 9, 9, 1, 9, 9, 9}
	got := runSmoother(t, 5, raw...)

	if len(got) != len(raw) {
		t.Fatalf("smoothed %d frames, want %d", len(got), len(raw))
	}
	for idx, v := range got {
		if v > raw[idx]+1e-12 {
			t.Errorf("smoothed[%d] = %v exceeds own raw gain %v", idx, v, raw[idx])
		}
		if idx+1 < len(raw) && v > raw[idx+1]+1e-12 {
			t.Errorf("smoothed[%d] = %v exceeds next raw gain %v", idx, v, raw[idx+1])
		}
	}

	// the single quiet-frame spike is fully damped
	if got[3] > 2+1e-12 {
		t.Errorf("spike smoothed to %v, want <= 2", got[3])
	}
}

func TestGainSmoother_IndependentLanes(t *testing.T) {
	t.Parallel()

	s := newGainSmoother(KernelGaussian.Weights(3), 2)
	s.push([]float64{1, 5})
	s.push([]float64{1, 5})

	dst := make([]float64, 2)
	if err := s.smooth(0, false, dst); err != nil {
		t.Fatal(err)
	}
	if !audiotest.NearlyEqual(dst[0], 1, 1e-12) || !audiotest.NearlyEqual(dst[1], 5, 1e-12) {
		t.Errorf("smooth(0) = %v, want [1 5]", dst)
	}
}
