// SPDX-License-Identifier: EPL-2.0

package audnorm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audnorm/audio"
	"github.com/ik5/audnorm/formats"
	"github.com/ik5/audnorm/formats/wav"
	"github.com/ik5/audnorm/normalizer"
	"github.com/ik5/audnorm/utils"
)

// NormalizeToPCM16 runs src through the dynamic normalizer and collects the
// whole stream as interleaved 16-bit PCM. The channel count and sample rate
// of src override those in cfg. bufferSize is the read size in samples and
// is rounded down to whole frames.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm16, err := audnorm.NormalizeToPCM16(src, normalizer.DefaultConfig(0, 0), 4096)
func NormalizeToPCM16(src audio.Source, cfg normalizer.Config, bufferSize int) ([]int16, error) {
	stage, err := audio.NewNormalizer(src, cfg)
	if err != nil {
		return nil, err
	}

	channels := stage.Channels()
	bufferSize = max(bufferSize-bufferSize%channels, channels)
	buf := make([]float32, bufferSize)

	// one second up front, append grows from there
	pcm16 := make([]int16, 0, src.SampleRate()*channels)

	for {
		n, err := stage.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if err == io.EOF {
			return pcm16, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
}

type fileOptions struct {
	registry *audio.Registry
	bitDepth int
	mono     bool
	log      logrus.FieldLogger
}

// FileOption customizes NormalizeFile.
type FileOption func(*fileOptions)

// WithRegistry picks input decoders from r instead of formats.NewRegistry().
func WithRegistry(r *audio.Registry) FileOption {
	return func(o *fileOptions) { o.registry = r }
}

// WithBitDepth sets the output sample size: 16 (default), 24 or 32.
func WithBitDepth(bits int) FileOption {
	return func(o *fileOptions) { o.bitDepth = bits }
}

// WithMono down-mixes the input to one channel before normalizing.
func WithMono() FileOption {
	return func(o *fileOptions) { o.mono = true }
}

// WithLogger receives progress and normalizer diagnostics.
func WithLogger(l logrus.FieldLogger) FileOption {
	return func(o *fileOptions) { o.log = l }
}

// NormalizeFile decodes inPath (the decoder is chosen by file extension),
// normalizes it and writes a PCM WAV with the same sample rate to outPath.
// A partially written outPath is removed on failure.
func NormalizeFile(inPath, outPath string, cfg normalizer.Config, opts ...FileOption) (err error) {
	o := fileOptions{bitDepth: 16}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = formats.NewRegistry()
	}
	if o.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.log = discard
	}
	log := o.log.WithFields(logrus.Fields{"input": inPath, "output": outPath})

	decoder, err := o.registry.ForPath(inPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer in.Close()

	src, err := decoder.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}
	if o.mono {
		src = audio.NewMonoMixer(src)
	}

	stage, err := audio.NewNormalizer(src, cfg, normalizer.WithLogger(o.log))
	if err != nil {
		return err
	}
	defer stage.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w", cerr)
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	w, err := wav.NewWriter(out, stage.SampleRate(), stage.Channels(), o.bitDepth)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"channels":   stage.Channels(),
		"sampleRate": stage.SampleRate(),
		"latency":    stage.Latency(),
	}).Info("normalizing")

	buf := make([]float32, stage.BufSize())
	total := 0
	for {
		n, rerr := stage.ReadSamples(buf)
		if werr := w.WriteSamples(buf[:n]); werr != nil {
			return fmt.Errorf("writing %s: %w", outPath, werr)
		}
		total += n

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("%w", rerr)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	frames := total / stage.Channels()
	log.WithFields(logrus.Fields{
		"frames":   frames,
		"duration": time.Duration(frames) * time.Second / time.Duration(stage.SampleRate()),
	}).Info("done")

	return nil
}
