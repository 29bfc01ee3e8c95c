// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"fmt"
	"math"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/window"
)

// Kernel selects the shape of the smoothing window applied to the gain history.
type Kernel int

const (
	// KernelGaussian weighs entries with a bell curve whose sigma grows with
	// the filter size.
	KernelGaussian Kernel = iota
	// KernelTriangular weighs entries linearly, peaking at the center.
	KernelTriangular
	// KernelHann uses a raised cosine.
	KernelHann
)

var kernelNames = map[Kernel]string{
	KernelGaussian:   "gaussian",
	KernelTriangular: "triangular",
	KernelHann:       "hann",
}

func (k Kernel) String() string {
	if name, ok := kernelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

func (k Kernel) valid() bool {
	_, ok := kernelNames[k]
	return ok
}

// ParseKernel maps a kernel name (case-insensitive) to its Kernel value.
func ParseKernel(name string) (Kernel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kernelNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kernel %q", ErrInvalidConfiguration, name)
}

// Weights returns size symmetric, strictly positive weights summing to 1.
func (k Kernel) Weights(size int) []float64 {
	if size < 1 {
		return nil
	}

	var w []float64
	switch k {
	case KernelTriangular:
		// the outer Bartlett points are zero, keep only the interior
		w = window.Bartlett(size + 2)[1 : size+1]
	case KernelHann:
		w = window.Hann(size + 2)[1 : size+1]
	default:
		w = gaussian(size)
	}

	vecmath.ScaleBlockInPlace(w, 1/vecmath.Sum(w))
	return w
}

func gaussian(size int) []float64 {
	w := make([]float64, size)
	center := size / 2
	sigma := ((float64(size)/2.0)-1.0)/3.0 + 1.0/3.0
	denom := 2 * sigma * sigma

	for i := range w {
		x := float64(i - center)
		w[i] = math.Exp(-(x * x) / denom)
	}
	return w
}
