// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Normalizer is a streaming dynamic gain normalizer for planar float64
// audio. It is not safe for concurrent use; independent instances share
// nothing.
type Normalizer struct {
	cfg      Config
	weights  []float64
	computer gainComputer
	log      logrus.FieldLogger

	st *state
}

// New validates cfg and returns a ready Normalizer.
func New(cfg Config, opts ...Option) (*Normalizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := &Normalizer{
		cfg:      cfg,
		weights:  cfg.Kernel.Weights(cfg.FilterSize),
		computer: newGainComputer(cfg),
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.WithField("component", "normalizer")
	n.st = newState(cfg, n.weights)

	n.log.WithFields(logrus.Fields{
		"channels":   cfg.Channels,
		"sampleRate": cfg.SampleRate,
		"frameSize":  cfg.FrameSize(),
		"filterSize": cfg.FilterSize,
		"kernel":     cfg.Kernel.String(),
		"coupled":    cfg.ChannelsCoupled,
		"dc":         cfg.DCCorrection,
		"targetPeak": cfg.TargetPeak,
		"maxGain":    cfg.MaxAmplification,
		"latency":    n.Latency(),
	}).Debug("normalizer created")

	return n, nil
}

// Config returns the configuration the normalizer was built with.
func (n *Normalizer) Config() Config { return n.cfg }

// FrameSize returns the analysis frame length in samples per channel.
func (n *Normalizer) FrameSize() int { return n.cfg.FrameSize() }

// Latency returns the number of frames a frame waits before it can be
// emitted: its own plus the smoothing lookahead.
func (n *Normalizer) Latency() int { return n.cfg.lookahead() + 1 }

// State returns the current lifecycle phase.
func (n *Normalizer) State() State { return n.st.phase }

// Buffered returns the samples per channel taken in but not yet returned.
func (n *Normalizer) Buffered() int { return n.st.buffered() }

// Available returns the finalized samples per channel ready to be collected.
func (n *Normalizer) Available() int { return n.st.output.len() }

// Process feeds one planar chunk and copies up to len(out[c]) normalized
// samples per channel into out. It returns the number of samples written per
// channel, which may be zero while the pipeline fills up.
//
// in and out may alias: the input is consumed before output is written.
func (n *Normalizer) Process(in, out [][]float64) (int, error) {
	if err := n.usable(); err != nil {
		return 0, err
	}
	if err := n.checkPlanar("input", in); err != nil {
		return 0, err
	}
	if err := n.checkPlanar("output", out); err != nil {
		return 0, err
	}
	if n.st.phase == StateFlushing {
		n.log.Warn("process called after flush, reset first")
		return 0, fmt.Errorf("%w: stream already flushed", ErrInvalidArgument)
	}

	st := n.st
	if count := len(in[0]); count > 0 {
		st.buffer.write(in)
		st.samplesIn += uint64(count)
		st.phase = StateStreaming
	}

	// the gain history holds a single kernel of frames, finalize each one
	// before the next is analyzed
	for {
		f, ok := st.buffer.nextFrame()
		if !ok {
			break
		}
		n.analyze(f)
		if err := n.finalize(false); err != nil {
			return 0, n.fail(err)
		}
	}

	if err := st.check(); err != nil {
		return 0, n.fail(err)
	}

	return n.collect(out)
}

// ProcessInPlace feeds buf and overwrites it with as many normalized samples
// as fit, returning how many were written per channel.
func (n *Normalizer) ProcessInPlace(buf [][]float64) (int, error) {
	return n.Process(buf, buf)
}

// Flush signals end of stream on the first call: the trailing partial frame
// and every delayed frame are pushed through the pipeline. Each call then
// copies up to len(out[c]) samples per channel into out. out must hold at
// least one sample per channel, so a return of 0 means the stream is fully
// drained; Reset starts a new one.
func (n *Normalizer) Flush(out [][]float64) (int, error) {
	if err := n.usable(); err != nil {
		return 0, err
	}
	if err := n.checkPlanar("output", out); err != nil {
		return 0, err
	}
	if len(out[0]) == 0 {
		return 0, fmt.Errorf("%w: flush output holds no samples", ErrInvalidArgument)
	}

	st := n.st
	if st.phase != StateFlushing {
		if f, ok := st.buffer.drain(); ok {
			n.analyze(f)
		}
		if err := n.finalize(true); err != nil {
			return 0, n.fail(err)
		}
		st.phase = StateFlushing

		n.log.WithFields(logrus.Fields{
			"frames":  st.framesOut,
			"samples": st.samplesIn,
			"pending": st.output.len(),
		}).Debug("end of stream flushed")
	}

	return n.collect(out)
}

// Reset discards all buffered audio and history, returning the normalizer
// to the state New left it in. A halted instance cannot be reset.
func (n *Normalizer) Reset() error {
	if err := n.usable(); err != nil {
		return err
	}
	n.st = newState(n.cfg, n.weights)
	return nil
}

func (n *Normalizer) usable() error {
	if n.st.phase == StateFailed {
		return fmt.Errorf("%w: normalizer halted", ErrInternalInvariant)
	}
	return nil
}

// checkPlanar rejects buffers whose channel count or per-channel lengths
// disagree.
func (n *Normalizer) checkPlanar(what string, buf [][]float64) error {
	if len(buf) != n.cfg.Channels {
		return fmt.Errorf("%w: %s has %d channels, want %d", ErrInvalidArgument, what, len(buf), n.cfg.Channels)
	}
	for c := 1; c < len(buf); c++ {
		if len(buf[c]) != len(buf[0]) {
			return fmt.Errorf("%w: %s channel %d holds %d samples, channel 0 holds %d",
				ErrInvalidArgument, what, c, len(buf[c]), len(buf[0]))
		}
	}
	return nil
}

// analyze measures f, records its raw gain and queues it for smoothing.
func (n *Normalizer) analyze(f *frame) {
	st := n.st
	st.analyzer.analyze(f, st.levels)
	n.computer.compute(st.levels, st.raw)
	st.smoother.push(st.raw)
	st.delayed = append(st.delayed, f)
	st.framesIn++
}

// finalize fades every delayed frame whose lookahead is satisfied, or all of
// them at end of stream, and moves the result to the output queue.
func (n *Normalizer) finalize(endOfStream bool) error {
	st := n.st
	for len(st.delayed) > 0 {
		f := st.delayed[0]
		if f.index != st.framesOut {
			return fmt.Errorf("%w: frame %d dequeued, expected %d", ErrInternalInvariant, f.index, st.framesOut)
		}
		if !endOfStream && !st.smoother.ready(f.index) {
			break
		}

		if err := st.smoother.smooth(f.index, endOfStream, st.smoothed); err != nil {
			return err
		}
		st.fade.apply(f, st.smoothed)
		st.output.push(f.samples)

		st.delayed[0] = nil
		st.delayed = st.delayed[1:]
		st.buffer.release(f)
		st.framesOut++
	}

	return st.check()
}

func (n *Normalizer) collect(out [][]float64) (int, error) {
	st := n.st
	written := st.output.pop(out)
	st.samplesOut += uint64(written)

	if err := st.check(); err != nil {
		return 0, n.fail(err)
	}
	return written, nil
}

// fail halts the instance and reports err.
func (n *Normalizer) fail(err error) error {
	if !errors.Is(err, ErrInternalInvariant) {
		err = fmt.Errorf("%w: %w", ErrInternalInvariant, err)
	}
	n.st.phase = StateFailed
	n.log.WithError(err).Error("normalizer halted")
	return err
}
