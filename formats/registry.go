// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/audnorm/audio"
	"github.com/ik5/audnorm/formats/aiff"
	"github.com/ik5/audnorm/formats/mp3"
	"github.com/ik5/audnorm/formats/vorbis"
	"github.com/ik5/audnorm/formats/wav"
)

// extensions maps each file extension to its decoder.
var extensions = map[string]audio.Decoder{
	"wav":  wav.Decoder{},
	"wave": wav.Decoder{},
	"mp3":  mp3.Decoder{},
	"ogg":  vorbis.Decoder{},
	"oga":  vorbis.Decoder{},
	"aif":  aiff.Decoder{},
	"aiff": aiff.Decoder{},
}

// NewRegistry returns a registry with the WAV, MP3, Ogg Vorbis and AIFF
// decoders registered under their usual file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	for ext, d := range extensions {
		r.Register(ext, d)
	}
	return r
}
