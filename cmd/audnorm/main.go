// SPDX-License-Identifier: EPL-2.0

// Command audnorm normalizes the loudness of an audio file and writes the
// result as PCM WAV.
//
//	audnorm [flags] <input.{wav|mp3|ogg|aiff}> <output.wav>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audnorm"
	"github.com/ik5/audnorm/formats"
	"github.com/ik5/audnorm/normalizer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	def := normalizer.DefaultConfig(0, 0)

	fs := flag.NewFlagSet("audnorm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	frame := fs.Int("frame", def.FrameLenMsec, "analysis frame length in milliseconds")
	filter := fs.Int("filter", def.FilterSize, "smoothing window in frames (odd)")
	peak := fs.Float64("peak", def.TargetPeak, "target peak magnitude, (0, 1]")
	maxGain := fs.Float64("maxgain", def.MaxAmplification, "maximum amplification factor")
	coupled := fs.Bool("coupled", def.ChannelsCoupled, "apply one gain to all channels")
	dc := fs.Bool("dc", def.DCCorrection, "remove DC bias before measuring")
	kernel := fs.String("kernel", def.Kernel.String(), "smoothing kernel: gaussian, triangular or hann")
	rms := fs.Float64("rms", def.TargetRMS, "target RMS limit, 0 disables")
	bits := fs.Int("bits", 16, "output bit depth: 16, 24 or 32")
	mono := fs.Bool("mono", false, "down-mix to mono before normalizing")
	verbose := fs.Bool("v", false, "verbose logging")
	version := fs.Bool("version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: audnorm [flags] <input.{%s}> <output.wav>\n",
			strings.Join(formats.NewRegistry().Formats(), "|"))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		major, minor, patch := normalizer.Version()
		b := normalizer.BuildInfo()
		fmt.Fprintf(stdout, "audnorm %d.%d.%d (%s, %s %s/%s)\n", major, minor, patch, b.Module, b.GoVersion, b.OS, b.Arch)
		return 0
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	k, err := normalizer.ParseKernel(*kernel)
	if err != nil {
		log.WithError(err).Error("invalid -kernel")
		return 2
	}

	cfg := def
	cfg.FrameLenMsec = *frame
	cfg.FilterSize = *filter
	cfg.TargetPeak = *peak
	cfg.MaxAmplification = *maxGain
	cfg.ChannelsCoupled = *coupled
	cfg.DCCorrection = *dc
	cfg.Kernel = k
	cfg.TargetRMS = *rms

	opts := []audnorm.FileOption{audnorm.WithLogger(log), audnorm.WithBitDepth(*bits)}
	if *mono {
		opts = append(opts, audnorm.WithMono())
	}

	if err := audnorm.NormalizeFile(fs.Arg(0), fs.Arg(1), cfg, opts...); err != nil {
		log.WithError(err).Error("normalization failed")
		return 1
	}
	return 0
}
