// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audnorm/internal/audiotest"
)

// intReader serves a fixed slice of integer samples.
type intReader struct {
	samples []int
	offset  int
	err     error
}

func (m *intReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func mono(rate int) *goaudio.Format {
	return &goaudio.Format{SampleRate: rate, NumChannels: 1}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := NewSource(&intReader{}, &goaudio.Format{SampleRate: 44100, NumChannels: 3}, 16, false)

	if src.SampleRate() != 44100 || src.Channels() != 3 {
		t.Errorf("layout = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize()%3 != 0 {
		t.Errorf("BufSize() = %d, want a multiple of 3", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		unsigned bool
		samples  []int
		want     []float64
	}{
		{"16-bit", 16, false, []int{-32768, 0, 16384}, []float64{-1, 0, 0.5}},
		{"24-bit", 24, false, []int{-8388608, 4194304}, []float64{-1, 0.5}},
		{"32-bit", 32, false, []int{-2147483648, 1073741824}, []float64{-1, 0.5}},
		{"signed 8-bit", 8, false, []int{-128, 64}, []float64{-1, 0.5}},
		{"unsigned 8-bit", 8, true, []int{0, 128, 192}, []float64{-1, 0, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewSource(&intReader{samples: tt.samples}, mono(8000), tt.bitDepth, tt.unsigned)
			got, err := audiotest.ReadAll(src, 16)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			values := make([]float64, len(got))
			for i, v := range got {
				values[i] = float64(v)
			}
			audiotest.RequireSliceNearlyEqual(t, values, tt.want, 1e-7)
		})
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := NewSource(&intReader{samples: []int{1, 2, 3, 4, 5}}, mono(8000), 16, false)
	buf := make([]float32, 3)

	n, err := src.ReadSamples(buf)
	if n != 3 || err != nil {
		t.Fatalf("first read = %d, %v", n, err)
	}
	n, err = src.ReadSamples(buf)
	if n != 2 || err != io.EOF {
		t.Fatalf("short read = %d, %v, want 2, io.EOF", n, err)
	}
	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("read after end = %d, %v", n, err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	broken := errors.New("bad chunk")
	src := NewSource(&intReader{err: broken}, mono(8000), 16, false)

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, broken) {
		t.Errorf("ReadSamples() error = %v, want wrapped decoder error", err)
	}
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	seeker := bytes.NewReader([]byte("abc"))
	got, err := Seekable(seeker)
	if err != nil || got != io.ReadSeeker(seeker) {
		t.Errorf("Seekable() did not pass a ReadSeeker through")
	}

	got, err = Seekable(io.MultiReader(strings.NewReader("xyz")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := got.Seek(1, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	rest, _ := io.ReadAll(got)
	if string(rest) != "yz" {
		t.Errorf("buffered reader read %q after seek, want %q", rest, "yz")
	}
}
