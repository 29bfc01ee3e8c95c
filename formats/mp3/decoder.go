// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audnorm/audio"
	"github.com/ik5/audnorm/utils"
)

// go-mp3 always produces interleaved stereo, 16-bit little endian.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec   mp3Reader
	buf   []byte
	carry int // bytes of an incomplete sample kept at the front of buf
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * bytesPerSample
	if cap(s.buf) < want {
		grown := make([]byte, want)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:want]

	for {
		n, err := s.dec.Read(s.buf[s.carry:])
		avail := s.carry + n
		samples := avail / bytesPerSample

		for i := range samples {
			v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
			dst[i] = utils.Int16ToFloat32(v)
		}
		s.carry = copy(s.buf, s.buf[samples*bytesPerSample:avail])

		switch {
		case err == io.EOF:
			return samples, io.EOF
		case err != nil:
			return samples, fmt.Errorf("decoding mp3: %w", err)
		case samples > 0:
			return samples, nil
		}
	}
}

// Decoder decodes MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{dec: dec, buf: make([]byte, 8192)}, nil
}
