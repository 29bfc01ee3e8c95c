// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding through
// github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("album.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//
// The source keeps the stream's channel count and sample rate. Reads are
// trimmed to whole frames, so len(dst) smaller than the channel count
// returns 0 samples.
package vorbis
