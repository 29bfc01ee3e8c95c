// SPDX-License-Identifier: EPL-2.0

// Package audnorm provides high-level helpers around a streaming dynamic
// audio normalizer.
//
// The normalizer raises quiet passages and tames loud ones by measuring the
// stream in short frames, turning each frame's peak into a gain factor,
// smoothing those factors over neighbouring frames and applying them with a
// linear ramp so the gain never jumps. The core engine lives in the
// normalizer subpackage and works on planar float64 buffers; audio wraps it
// as a pull-based Source stage.
//
// # Supported Formats
//
// Input:
//   - WAV (8/16/24/32-bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// Output is PCM WAV through formats/wav.
//
// # Quick Start
//
//	err := audnorm.NormalizeFile("interview.mp3", "interview.wav",
//	    normalizer.DefaultConfig(0, 0))
//
// Or, starting from any decoded source:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm16, err := audnorm.NormalizeToPCM16(src, normalizer.DefaultConfig(0, 0), 4096)
//
// In both cases the channel count and sample rate come from the input.
//
// # Building Pipelines
//
//	src, _ := vorbis.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
//	stage, _ := audio.NewNormalizer(mono, cfg)
//	streamer, _ := playback.NewStreamer(stage) // a beep.Streamer
//
// # Latency
//
// A frame is released once the following FilterSize/2 frames have been
// measured, so with the defaults (500 ms frames, filter 31) the first output
// appears after eight seconds of input. Everything is released at the end of
// the stream.
//
// See the individual subpackages for more detailed documentation.
package audnorm
