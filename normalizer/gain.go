// SPDX-License-Identifier: EPL-2.0

package normalizer

import "math"

// epsilon floors the measured level so near-silent frames do not blow up
// the division; they end up at the amplification ceiling instead.
const epsilon = 1e-10

// gainComputer turns frame levels into raw gain factors.
type gainComputer struct {
	targetPeak float64
	targetRMS  float64
	maxGain    float64
	minGain    float64
}

func newGainComputer(cfg Config) gainComputer {
	return gainComputer{
		targetPeak: cfg.TargetPeak,
		targetRMS:  cfg.TargetRMS,
		maxGain:    cfg.MaxAmplification,
		minGain:    1 / cfg.MaxAmplification,
	}
}

// compute writes one clamped raw gain per lane into dst.
func (g gainComputer) compute(levels []Level, dst []float64) {
	for i, lv := range levels {
		dst[i] = g.gain(lv)
	}
}

func (g gainComputer) gain(lv Level) float64 {
	gain := g.targetPeak / math.Max(lv.Peak, epsilon)

	if g.targetRMS > 0 {
		gain = math.Min(gain, g.targetRMS/math.Max(lv.RMS, epsilon))
	}

	// DC removal and RMS targeting measure something other than the samples
	// being amplified; never let those push the real peak past the target.
	if lv.TruePeak > epsilon {
		gain = math.Min(gain, g.targetPeak/lv.TruePeak)
	}

	return min(max(gain, g.minGain), g.maxGain)
}
