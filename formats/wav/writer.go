// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Writer encodes interleaved float32 samples as integer PCM. The RIFF sizes
// are patched on Close, so the destination has to seek.
type Writer struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	scale    float64
	closed   bool
}

// NewWriter prepares a WAV stream of 16, 24 or 32 bit PCM.
func NewWriter(ws io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	if sampleRate < 1 || channels < 1 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, sampleRate, channels)
	}
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return &Writer{
		enc:      gowav.NewEncoder(ws, sampleRate, bitDepth, channels, formatPCM),
		channels: channels,
		scale:    float64(int64(1)<<(bitDepth-1) - 1),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples appends interleaved samples; len(samples) must be a multiple
// of the channel count. Values outside [-1, 1] are clipped.
func (w *Writer) WriteSamples(samples []float32) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrInvalidLayout, len(samples), w.channels)
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, v := range samples {
		x := math.Max(-1, math.Min(1, float64(v)))
		w.buf.Data[i] = int(math.Round(x * w.scale))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Close finalizes the headers. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
