// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Level is the magnitude measured on one frame for one gain lane.
type Level struct {
	// Peak is the largest absolute sample value after DC removal.
	Peak float64
	// RMS is the root mean square after DC removal.
	RMS float64
	// Bias is the mean that was subtracted before measuring (0 without DC correction).
	Bias float64
	// TruePeak is the largest absolute value of the samples as they will be amplified.
	TruePeak float64
}

// levelAnalyzer measures frames. DC removal only touches a scratch copy;
// output samples are never modified here.
type levelAnalyzer struct {
	dcCorrection bool
	coupled      bool
	scratch      []float64
}

func newLevelAnalyzer(cfg Config) *levelAnalyzer {
	return &levelAnalyzer{
		dcCorrection: cfg.DCCorrection,
		coupled:      cfg.ChannelsCoupled,
		scratch:      make([]float64, cfg.FrameSize()),
	}
}

// analyze fills dst with one Level per lane: a single entry holding the
// per-field maximum across channels when coupled, one per channel otherwise.
func (a *levelAnalyzer) analyze(f *frame, dst []Level) {
	if a.coupled {
		dst[0] = Level{}
	}

	for c, x := range f.samples {
		lv := a.measure(x)
		if !a.coupled {
			dst[c] = lv
			continue
		}

		dst[0].Peak = math.Max(dst[0].Peak, lv.Peak)
		dst[0].RMS = math.Max(dst[0].RMS, lv.RMS)
		dst[0].TruePeak = math.Max(dst[0].TruePeak, lv.TruePeak)
		if math.Abs(lv.Bias) > math.Abs(dst[0].Bias) {
			dst[0].Bias = lv.Bias
		}
	}
}

func (a *levelAnalyzer) measure(x []float64) Level {
	n := len(x)
	if n == 0 {
		return Level{}
	}

	lv := Level{TruePeak: vecmath.MaxAbs(x)}
	if !a.dcCorrection {
		lv.Peak = lv.TruePeak
		lv.RMS = math.Sqrt(vecmath.DotProduct(x, x) / float64(n))
		return lv
	}

	lv.Bias = vecmath.Sum(x) / float64(n)
	if cap(a.scratch) < n {
		a.scratch = make([]float64, n)
	}
	centered := a.scratch[:n]
	for i, v := range x {
		centered[i] = v - lv.Bias
	}

	lv.Peak = vecmath.MaxAbs(centered)
	lv.RMS = math.Sqrt(vecmath.DotProduct(centered, centered) / float64(n))
	return lv
}
