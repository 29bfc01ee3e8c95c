// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Waveform yields the value of a sample given its index and channel.
type Waveform func(sample int, channel int) float32

// MockSource generates interleaved float32 audio for tests.
// It implements audio.Source without importing it, avoiding cycles.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     Waveform
	closed       bool
	stalls       int
}

// NewMockSource creates a source of totalSamples samples per channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a full-scale sine on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with a constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewStepSource plays each level in turn for stepSamples samples, on every
// channel.
func NewStepSource(sampleRate, channels, stepSamples int, levels ...float32) *MockSource {
	return NewMockSource(sampleRate, channels, stepSamples*len(levels), func(sample int, _ int) float32 {
		return levels[sample/stepSamples]
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Stall makes the next n reads return (0, nil) without producing audio.
func (m *MockSource) Stall(n int) { m.stalls = n }

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.stalls > 0 {
		m.stalls--
		return 0, nil
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for f := range frames {
		idx := m.generated + f
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += frames
	written := frames * m.channels

	if m.generated >= m.totalSamples {
		return written, io.EOF
	}
	return written, nil
}

// ReadAll drains a source into one interleaved slice using reads of
// bufSize values.
func ReadAll(src interface {
	ReadSamples([]float32) (int, error)
}, bufSize int) ([]float32, error) {
	var all []float32
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return all, err
		}
	}
}
