// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding on top
// of github.com/go-audio/aiff.
//
//	file, _ := os.Open("take1.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//
// Signed big-endian PCM of 8, 16, 24 or 32 bits is supported with any
// channel count. Compressed AIFF-C is not.
package aiff
