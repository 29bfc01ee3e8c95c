// SPDX-License-Identifier: EPL-2.0

package normalizer

import (
	"runtime"
	"runtime/debug"
)

const (
	versionMajor = 1
	versionMinor = 2
	versionPatch = 0
)

// Version returns the normalizer API version.
func Version() (major, minor, patch uint32) {
	return versionMajor, versionMinor, versionPatch
}

// Build describes the binary the normalizer was compiled into.
type Build struct {
	GoVersion string
	OS        string
	Arch      string
	Module    string // module version, "(devel)" for local builds
}

// BuildInfo reports toolchain and platform details of the running binary.
func BuildInfo() Build {
	b := Build{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Module:    "(devel)",
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			b.Module = dep.Version
			return b
		}
	}
	if info.Main.Path == modulePath && info.Main.Version != "" {
		b.Module = info.Main.Version
	}
	return b
}

const modulePath = "github.com/ik5/audnorm"
