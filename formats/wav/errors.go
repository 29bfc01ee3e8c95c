// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrInvalidLayout       = errors.New("invalid channel count or sample rate")
	ErrWriterClosed        = errors.New("wav writer already closed")
)
