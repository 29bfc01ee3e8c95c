// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files.
//
// Decoding and the seekable Writer are built on github.com/go-audio/wav.
// WriteWAV16 emits a canonical 44-byte header followed by 16-bit samples and
// works on any io.Writer.
//
// # Decoding
//
//	file, _ := os.Open("speech.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // ErrNotWavFile, ErrUnsupportedEncoding, ErrUnsupportedBitDepth
//	}
//
// 8, 16, 24 and 32-bit integer PCM is accepted with any channel count.
// Samples come out as interleaved float32 in [-1.0, 1.0]. Readers that
// cannot seek are buffered in memory first.
//
// # Encoding
//
//	out, _ := os.Create("normalized.wav")
//	w, err := wav.NewWriter(out, 48000, 2, 16)
//	err = w.WriteSamples(interleaved)
//	err = w.Close() // patches the RIFF sizes
//
// For pipes and buffers use WriteWAV16 with already converted samples.
package wav
