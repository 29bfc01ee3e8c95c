// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNotWavFile", ErrNotWavFile, "not a WAV file"},
		{"ErrUnsupportedEncoding", ErrUnsupportedEncoding, "only integer PCM WAV is supported"},
		{"ErrUnsupportedBitDepth", ErrUnsupportedBitDepth, "unsupported bit depth"},
		{"ErrInvalidLayout", ErrInvalidLayout, "invalid channel count or sample rate"},
		{"ErrWriterClosed", ErrWriterClosed, "wav writer already closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.want {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.want)
			}

			wrapped := fmt.Errorf("decoding: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) = false", tt.name)
			}
		})
	}
}
