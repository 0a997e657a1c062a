package kernels

import (
	"os"
	"strings"
)

// Impl identifies a family of kernel bodies.
type Impl uint8

const (
	// Generic is the one-element-per-iteration implementation.
	Generic Impl = iota
	// Unrolled processes dense sweeps eight elements at a time.
	Unrolled
)

// String returns the string representation of an Impl.
func (i Impl) String() string {
	switch i {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseImpl parses a string into an Impl value.
func ParseImpl(s string) (Impl, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// Package-level state, set once by the platform init.
var (
	activeImpl  Impl
	hasOverride bool

	// hasWideVectors is true when the CPU has 256-bit (x86) or 128-bit (arm64) vector units.
	hasWideVectors bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("GRAPHBLAS_KERNELS"); override != "" {
		if impl, ok := ParseImpl(override); ok {
			hasOverride = true
			activeImpl = impl
			setKernels(impl)
			return
		}
	}

	activeImpl = Generic
	if hasWideVectors {
		activeImpl = Unrolled
	}
	setKernels(activeImpl)
}

// ActiveImpl returns the currently active implementation.
func ActiveImpl() Impl {
	return activeImpl
}

// IsOverridden returns true if GRAPHBLAS_KERNELS was set to a valid value.
func IsOverridden() bool {
	return hasOverride
}

// HasWideVectors reports whether wide vector units were detected.
func HasWideVectors() bool {
	return hasWideVectors
}
