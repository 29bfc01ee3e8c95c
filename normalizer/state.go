// SPDX-License-Identifier: EPL-2.0

package normalizer

import "fmt"

// State is the lifecycle phase of a Normalizer.
type State int

const (
	// StateIdle is a freshly constructed or reset normalizer.
	StateIdle State = iota
	// StateStreaming means samples have been fed and frames are flowing.
	StateStreaming
	// StateFlushing means end of stream was signaled; only draining is allowed.
	StateFlushing
	// StateFailed means an internal invariant broke; the instance is halted.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateFlushing:
		return "flushing"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// state is every piece of mutable data a Normalizer owns. Reset replaces it
// wholesale with newState.
type state struct {
	phase State

	buffer   *frameBuffer
	analyzer *levelAnalyzer
	smoother *gainSmoother
	fade     *fadeApplier
	output   *sampleQueue

	// delayed holds analyzed frames waiting for their lookahead, oldest first.
	delayed []*frame

	framesIn   uint64 // frames analyzed
	framesOut  uint64 // frames faded into output
	samplesIn  uint64 // per channel
	samplesOut uint64 // per channel, handed back to the caller

	levels   []Level
	raw      []float64
	smoothed []float64
}

func newState(cfg Config, weights []float64) *state {
	lanes := cfg.lanes()
	return &state{
		phase:    StateIdle,
		buffer:   newFrameBuffer(cfg.Channels, cfg.FrameSize()),
		analyzer: newLevelAnalyzer(cfg),
		smoother: newGainSmoother(weights, lanes),
		fade:     newFadeApplier(cfg),
		output:   newSampleQueue(cfg.Channels),
		levels:   make([]Level, lanes),
		raw:      make([]float64, lanes),
		smoothed: make([]float64, lanes),
	}
}

// delayedSamples counts samples per channel sitting in delayed frames.
func (s *state) delayedSamples() int {
	n := 0
	for _, f := range s.delayed {
		n += f.size()
	}
	return n
}

// buffered counts samples per channel taken in but not yet handed back.
func (s *state) buffered() int {
	return s.buffer.len() + s.delayedSamples() + s.output.len()
}

// check verifies the frame and sample bookkeeping.
func (s *state) check() error {
	if got, want := uint64(len(s.delayed)), s.framesIn-s.framesOut; got != want {
		return fmt.Errorf("%w: %d delayed frames, expected %d", ErrInternalInvariant, got, want)
	}
	if len(s.delayed) > 0 && s.delayed[0].index != s.framesOut {
		return fmt.Errorf("%w: head frame %d, expected %d", ErrInternalInvariant, s.delayed[0].index, s.framesOut)
	}
	if s.smoother.known() != s.framesIn {
		return fmt.Errorf("%w: %d raw gains for %d frames", ErrInternalInvariant, s.smoother.known(), s.framesIn)
	}
	if s.samplesIn != s.samplesOut+uint64(s.buffered()) {
		return fmt.Errorf("%w: %d samples in, %d out, %d buffered",
			ErrInternalInvariant, s.samplesIn, s.samplesOut, s.buffered())
	}
	return nil
}
