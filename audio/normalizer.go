// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audnorm/normalizer"
	"github.com/ik5/audnorm/utils"
)

const defaultBufSize = 4096

// Normalizer is a Source stage that runs its upstream through a dynamic
// normalizer. Channel count and sample rate are taken from the upstream; the
// stream is flushed when the upstream reports io.EOF, so the stage returns
// exactly as many samples as it reads. A read that yields nothing upstream
// returns (0, nil).
type Normalizer struct {
	src      Source
	engine   *normalizer.Normalizer
	channels int

	readBuf []float32
	in      [][]float64
	view    [][]float64 // in trimmed to the frames of the last read
	empty   [][]float64
	out     [][]float64

	srcDone bool
	drained bool
}

// NewNormalizer wraps src. cfg.Channels and cfg.SampleRate are overwritten
// with the upstream's values; every other field is used as given.
func NewNormalizer(src Source, cfg normalizer.Config, opts ...normalizer.Option) (*Normalizer, error) {
	cfg.Channels = src.Channels()
	cfg.SampleRate = src.SampleRate()

	engine, err := normalizer.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	size := src.BufSize()
	if size <= 0 {
		size = defaultBufSize
	}
	size = max(size-size%cfg.Channels, cfg.Channels)

	n := &Normalizer{
		src:      src,
		engine:   engine,
		channels: cfg.Channels,
		readBuf:  make([]float32, size),
		in:       make([][]float64, cfg.Channels),
		view:     make([][]float64, cfg.Channels),
		empty:    make([][]float64, cfg.Channels),
		out:      make([][]float64, cfg.Channels),
	}
	for c := range n.in {
		n.in[c] = make([]float64, size/cfg.Channels)
	}
	return n, nil
}

func (n *Normalizer) SampleRate() int { return n.src.SampleRate() }
func (n *Normalizer) Channels() int   { return n.channels }
func (n *Normalizer) BufSize() int    { return len(n.readBuf) }

func (n *Normalizer) Close() error {
	if err := n.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Latency is how much audio the stage holds back before the first sample
// comes out.
func (n *Normalizer) Latency() time.Duration {
	samples := n.engine.Latency() * n.engine.FrameSize()
	return time.Duration(samples) * time.Second / time.Duration(n.src.SampleRate())
}

// Engine exposes the underlying normalizer for queries such as Buffered.
func (n *Normalizer) Engine() *normalizer.Normalizer { return n.engine }

func (n *Normalizer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%n.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if n.drained {
		return 0, io.EOF
	}

	out := n.outBuffers(len(dst) / n.channels)

	for {
		var (
			written int
			err     error
			srcErr  error
		)

		switch {
		case n.srcDone:
			written, err = n.engine.Flush(out)
			if err == nil && written == 0 {
				n.drained = true
				return 0, io.EOF
			}
		case n.engine.Available() > 0:
			// hand out what is finalized before pulling more upstream
			written, err = n.engine.Process(n.empty, out)
		default:
			var read int
			read, srcErr = n.src.ReadSamples(n.readBuf)
			if read == 0 && srcErr == nil {
				// upstream has nothing right now, let the caller retry
				return 0, nil
			}
			frames := utils.Deinterleave(n.in, n.readBuf[:read])

			for c := range n.view {
				n.view[c] = n.in[c][:frames]
			}
			written, err = n.engine.Process(n.view, out)

			if errors.Is(srcErr, io.EOF) {
				n.srcDone = true
				srcErr = nil
			}
		}

		if err != nil {
			return 0, fmt.Errorf("normalize: %w", err)
		}
		if written > 0 || srcErr != nil {
			return utils.Interleave(dst, out, written), srcErr
		}
	}
}

// outBuffers returns planar output slices of frames samples, growing the
// backing storage when needed.
func (n *Normalizer) outBuffers(frames int) [][]float64 {
	for c := range n.out {
		if cap(n.out[c]) < frames {
			n.out[c] = make([]float64, frames)
		}
		n.out[c] = n.out[c][:frames]
	}
	return n.out
}
