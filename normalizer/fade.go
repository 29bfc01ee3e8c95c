// SPDX-License-Identifier: EPL-2.0

package normalizer

import vecmath "github.com/cwbudde/algo-vecmath"

// fadeApplier amplifies frames in place, ramping linearly from the previous
// frame's gain to the current one so the effective gain is continuous across
// frame boundaries.
type fadeApplier struct {
	coupled bool
	ramp    []float64 // ramp[i] = i / frameSize
	steps   []float64
	base    []float64
	prev    []float64
	primed  bool
}

func newFadeApplier(cfg Config) *fadeApplier {
	size := cfg.FrameSize()
	return &fadeApplier{
		coupled: cfg.ChannelsCoupled,
		ramp:    linearRamp(make([]float64, size)),
		steps:   make([]float64, size),
		base:    make([]float64, size),
		prev:    make([]float64, cfg.lanes()),
	}
}

func linearRamp(dst []float64) []float64 {
	n := float64(len(dst))
	for i := range dst {
		dst[i] = float64(i) / n
	}
	return dst
}

// apply multiplies every channel of f by the ramp from the previous gain to
// gains, then remembers gains for the next frame. The first frame of a
// stream starts flat at its own gain.
func (a *fadeApplier) apply(f *frame, gains []float64) {
	if !a.primed {
		copy(a.prev, gains)
		a.primed = true
	}

	n := f.size()
	ramp := a.ramp
	if n != len(ramp) {
		ramp = linearRamp(make([]float64, n))
	}
	steps, base := a.steps[:n], a.base[:n]

	for c, x := range f.samples {
		lane := c
		if a.coupled {
			lane = 0
		}
		from, to := a.prev[lane], gains[lane]

		if from == to {
			vecmath.ScaleBlockInPlace(x, to)
			continue
		}

		// x * (from + (to-from)*ramp) = x*(to-from)*ramp + x*from
		vecmath.ScaleBlock(steps, ramp, to-from)
		vecmath.ScaleBlock(base, x, from)
		vecmath.MulAddBlock(x, x, steps, base)
	}

	copy(a.prev, gains)
}
