// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const headerSize = 44

// WriteWAV16 writes interleaved 16-bit samples as a complete WAV file. Unlike
// Writer it needs no seeking, so it works on pipes and in-memory buffers.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if sampleRate < 1 || channels < 1 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d Hz, %d channels, %d samples", ErrInvalidLayout, sampleRate, channels, len(samples))
	}

	dataSize := uint32(len(samples) * 2)
	blockAlign := uint16(channels * 2)

	header := make([]byte, 0, headerSize)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, headerSize-8+dataSize)
	header = append(header, "WAVEfmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, formatPCM)
	header = binary.LittleEndian.AppendUint16(header, uint16(channels))
	header = binary.LittleEndian.AppendUint32(header, uint32(sampleRate))
	header = binary.LittleEndian.AppendUint32(header, uint32(sampleRate)*uint32(blockAlign))
	header = binary.LittleEndian.AppendUint16(header, blockAlign)
	header = binary.LittleEndian.AppendUint16(header, 16)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunk = 8192
	buf := make([]byte, 0, 2*min(len(samples), chunk))
	for start := 0; start < len(samples); start += chunk {
		buf = buf[:0]
		for _, s := range samples[start:min(start+chunk, len(samples))] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
