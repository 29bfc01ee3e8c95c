// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding through github.com/hajimehoshi/go-mp3.
//
//	file, _ := os.Open("podcast.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//
// The decoder always yields interleaved stereo float32 at the stream's
// sample rate; mono files are duplicated to both channels by go-mp3. Feed
// the source to audio.NewMonoMixer when a single channel is wanted.
package mp3
