// SPDX-License-Identifier: EPL-2.0

package normalizer

import "errors"

var (
	// ErrInvalidConfiguration is returned by New when a Config field is out of range.
	ErrInvalidConfiguration = errors.New("invalid normalizer configuration")

	// ErrInvalidArgument is returned when a call is rejected because of malformed
	// input. The normalizer state is left untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternalInvariant reports queue or frame index desynchronization.
	// The instance is halted and every later call returns this error.
	ErrInternalInvariant = errors.New("internal invariant violated")
)
