// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audnorm/utils"
)

const defaultBufSize = 4096

// IntReader is the part of the go-audio wav and aiff decoders a Source needs.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts the integer samples of an IntReader to float32.
type Source struct {
	dec      IntReader
	format   *goaudio.Format
	bitDepth int
	unsigned bool // 8-bit WAV stores unsigned bytes
	intBuf   *goaudio.IntBuffer
	done     bool
}

// NewSource wraps dec. unsigned marks 8-bit data centered on 128.
func NewSource(dec IntReader, format *goaudio.Format, bitDepth int, unsigned bool) *Source {
	return &Source{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		unsigned: unsigned && bitDepth == 8,
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return defaultBufSize - defaultBufSize%s.format.NumChannels
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	for i, v := range s.intBuf.Data[:n] {
		if s.unsigned {
			v -= 128
		}
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	switch {
	case err == io.EOF || (err == nil && n < len(dst)):
		s.done = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("reading pcm: %w", err)
	}
	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when r
// cannot seek. The go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
