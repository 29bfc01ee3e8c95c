// SPDX-License-Identifier: EPL-2.0

// Package audio provides the pull-based pipeline the normalizer plugs into.
//
// This package contains:
//   - Source interface for audio input
//   - Normalizer, a Source stage running the dynamic normalizer
//   - MonoMixer for channel down-mixing
//   - Format registry for decoder lookup by name or file extension
//
// # Source Interface
//
// Every decoder and stage implements Source, so they chain freely:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1.0, 1.0]. A read returning io.EOF
// ends the stream.
//
// # Normalizing
//
//	cfg := normalizer.DefaultConfig(0, 0) // layout is taken from src
//	stage, err := audio.NewNormalizer(src, cfg)
//	if err != nil {
//	    return err
//	}
//	buf := make([]float32, 4096)
//	for {
//	    n, err := stage.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// The stage holds back Latency() worth of audio before the first sample
// comes out and releases it all once the upstream ends. len(dst) must be a
// multiple of the channel count.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("input.wav")
package audio
