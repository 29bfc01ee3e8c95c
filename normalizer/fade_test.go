// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"testing"

	"github.com/ik5/audnorm/internal/audiotest"
)

func fadeConfig(channels int, coupled bool) Config {
	cfg := DefaultConfig(channels, 1000)
	cfg.FrameLenMsec = 4 // 4 samples
	cfg.ChannelsCoupled = coupled
	return cfg
}

func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

func TestFadeApplier_FirstFrameIsFlat(t *testing.T) {
	t.Parallel()

	a := newFadeApplier(fadeConfig(1, false))
	f := &frame{samples: [][]float64{ones(4)}}
	a.apply(f, []float64{2})

	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{2, 2, 2, 2}, 1e-12)
}

func TestFadeApplier_RampsFromPreviousGain(t *testing.T) {
	t.Parallel()

	a := newFadeApplier(fadeConfig(1, false))
	a.apply(&frame{samples: [][]float64{ones(4)}}, []float64{2})

	f := &frame{samples: [][]float64{ones(4)}}
	a.apply(f, []float64{4})
	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{2, 2.5, 3, 3.5}, 1e-12)

	// next frame starts exactly at the gain the ramp was heading to
	f = &frame{samples: [][]float64{ones(4)}}
	a.apply(f, []float64{4})
	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{4, 4, 4, 4}, 1e-12)
}

func TestFadeApplier_PartialFrameUsesItsOwnLength(t *testing.T) {
	t.Parallel()

	a := newFadeApplier(fadeConfig(1, false))
	a.apply(&frame{samples: [][]float64{ones(4)}}, []float64{1})

	f := &frame{samples: [][]float64{{1, 1}}}
	a.apply(f, []float64{3})
	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{1, 2}, 1e-12)
}

func TestFadeApplier_ScalesSignedSamples(t *testing.T) {
	t.Parallel()

	a := newFadeApplier(fadeConfig(1, false))
	f := &frame{samples: [][]float64{{0.5, -0.5, 0, -0.25}}}
	a.apply(f, []float64{2})

	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{1, -1, 0, -0.5}, 1e-12)
}

func TestFadeApplier_CoupledSharesLaneGain(t *testing.T) {
	t.Parallel()

	a := newFadeApplier(fadeConfig(2, true))
	f := &frame{samples: [][]float64{ones(4), {0.5, 0.5, 0.5, 0.5}}}
	a.apply(f, []float64{3})

	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{3, 3, 3, 3}, 1e-12)
	audiotest.RequireSliceNearlyEqual(t, f.samples[1], []float64{1.5, 1.5, 1.5, 1.5}, 1e-12)
}

func TestFadeApplier_PerChannelLanes(t *testing.T) {
	t.Parallel()

	a := newFadeApplier(fadeConfig(2, false))
	a.apply(&frame{samples: [][]float64{ones(4), ones(4)}}, []float64{1, 2})

	f := &frame{samples: [][]float64{ones(4), ones(4)}}
	a.apply(f, []float64{1, 6})

	audiotest.RequireSliceNearlyEqual(t, f.samples[0], []float64{1, 1, 1, 1}, 1e-12)
	audiotest.RequireSliceNearlyEqual(t, f.samples[1], []float64{2, 3, 4, 5}, 1e-12)
}
