// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"fmt"
	"math"
)

// Defaults used by DefaultConfig.
const (
	DefaultFrameLenMsec     = 500
	DefaultFilterSize       = 31
	DefaultTargetPeak       = 0.95
	DefaultMaxAmplification = 10.0
)

// Config holds the construction-time parameters of a Normalizer.
// A Normalizer copies its Config and never mutates it.
type Config struct {
	// Channels is the number of planar channels fed per call.
	Channels int
	// SampleRate of the stream in Hz.
	SampleRate int
	// FrameLenMsec is the analysis frame length in milliseconds.
	FrameLenMsec int
	// ChannelsCoupled forces one shared gain for all channels.
	ChannelsCoupled bool
	// DCCorrection removes the per-frame mean before measuring the level.
	DCCorrection bool
	// TargetPeak is the peak magnitude the output is steered to, in (0, 1].
	TargetPeak float64
	// MaxAmplification bounds the gain to [1/MaxAmplification, MaxAmplification].
	MaxAmplification float64
	// FilterSize is the width of the smoothing kernel in frames. Must be odd.
	FilterSize int
	// TargetRMS additionally limits the gain so the frame RMS does not exceed
	// it. Zero disables RMS targeting.
	TargetRMS float64
	// Kernel selects the smoothing window shape.
	Kernel Kernel
}

// DefaultConfig returns the stock parameters for the given stream layout.
func DefaultConfig(channels, sampleRate int) Config {
	return Config{
		Channels:         channels,
		SampleRate:       sampleRate,
		FrameLenMsec:     DefaultFrameLenMsec,
		ChannelsCoupled:  true,
		DCCorrection:     false,
		TargetPeak:       DefaultTargetPeak,
		MaxAmplification: DefaultMaxAmplification,
		FilterSize:       DefaultFilterSize,
		Kernel:           KernelGaussian,
	}
}

// FrameSize returns the number of samples per channel in one analysis frame.
func (c Config) FrameSize() int {
	return int(math.Round(float64(c.SampleRate) * float64(c.FrameLenMsec) / 1000.0))
}

// Validate checks every field and returns an error wrapping
// ErrInvalidConfiguration for the first one out of range.
func (c Config) Validate() error {
	switch {
	case c.Channels < 1:
		return fmt.Errorf("%w: channels must be >= 1, got %d", ErrInvalidConfiguration, c.Channels)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidConfiguration, c.SampleRate)
	case c.FrameLenMsec <= 0:
		return fmt.Errorf("%w: frame length must be > 0 ms, got %d", ErrInvalidConfiguration, c.FrameLenMsec)
	case c.FrameSize() < 1:
		return fmt.Errorf("%w: %d ms at %d Hz yields an empty frame",
			ErrInvalidConfiguration, c.FrameLenMsec, c.SampleRate)
	case !(c.TargetPeak > 0 && c.TargetPeak <= 1):
		return fmt.Errorf("%w: target peak must be in (0, 1], got %v", ErrInvalidConfiguration, c.TargetPeak)
	case !(c.MaxAmplification >= 1) || math.IsInf(c.MaxAmplification, 0):
		return fmt.Errorf("%w: max amplification must be >= 1, got %v", ErrInvalidConfiguration, c.MaxAmplification)
	case c.FilterSize < 1 || c.FilterSize%2 == 0:
		return fmt.Errorf("%w: filter size must be an odd number >= 1, got %d", ErrInvalidConfiguration, c.FilterSize)
	case c.TargetRMS < 0 || c.TargetRMS > 1 || math.IsNaN(c.TargetRMS):
		return fmt.Errorf("%w: target RMS must be in [0, 1], got %v", ErrInvalidConfiguration, c.TargetRMS)
	case !c.Kernel.valid():
		return fmt.Errorf("%w: unknown kernel %d", ErrInvalidConfiguration, c.Kernel)
	}

	return nil
}

// lanes is the number of independent gain paths: one when coupled.
func (c Config) lanes() int {
	if c.ChannelsCoupled {
		return 1
	}
	return c.Channels
}

// lookahead is the number of raw gains past a frame that must be known
// before the frame can be finalized. The next frame's raw gain is always
// among them, since it bounds the ramp out of the frame.
func (c Config) lookahead() int {
	return max(c.FilterSize/2, 1)
}
