// SPDX-License-Identifier: EPL-2.0

// Package playback adapts audio sources to github.com/faiface/beep so a
// normalized stream can be mixed, sequenced or sent to a speaker.
package playback

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"

	"github.com/ik5/audnorm/audio"
)

// ErrUnsupportedChannels is returned for sources with more than two channels.
var ErrUnsupportedChannels = errors.New("beep streams carry at most two channels")

// precision is the byte depth reported in Format; beep uses it for encoding.
const precision = 2

// Streamer is a beep.Streamer over an audio.Source. Mono sources are copied
// to both sides.
type Streamer struct {
	src      audio.Source
	channels int
	buf      []float32
	pos      int
	done     bool
	err      error
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer wraps a mono or stereo source.
func NewStreamer(src audio.Source) (*Streamer, error) {
	channels := src.Channels()
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedChannels, channels)
	}
	return &Streamer{src: src, channels: channels}, nil
}

// Format describes the stream for beep consumers such as speaker.Init.
func (s *Streamer) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(s.src.SampleRate()),
		NumChannels: 2,
		Precision:   precision,
	}
}

// Position is the playback time streamed so far.
func (s *Streamer) Position() time.Duration {
	return s.Format().SampleRate.D(s.pos)
}

// Stream fills samples completely unless the source ends, fails or has
// nothing to give. A stalled source yields (0, false) without ending the
// stream; a later call resumes reading.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	if s.done || s.err != nil {
		return 0, false
	}

	want := len(samples) * s.channels
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}

	filled := 0
	for filled < len(samples) {
		n, err := s.src.ReadSamples(s.buf[:(len(samples)-filled)*s.channels])
		frames := n / s.channels

		for f := range frames {
			left := float64(s.buf[f*s.channels])
			right := left
			if s.channels == 2 {
				right = float64(s.buf[f*s.channels+1])
			}
			samples[filled+f] = [2]float64{left, right}
		}
		filled += frames

		if errors.Is(err, io.EOF) {
			s.done = true
			break
		}
		if err != nil {
			s.err = err
			break
		}
		if n == 0 {
			break
		}
	}

	s.pos += filled
	return filled, filled > 0
}

// Err reports the error that stopped the stream, if any.
func (s *Streamer) Err() error { return s.err }

// Close closes the source.
func (s *Streamer) Close() error {
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
