// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option customizes a Normalizer beyond its Config.
type Option func(*Normalizer)

// WithLogger routes diagnostic messages to l. Messages are advisory and
// never influence the computed output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
