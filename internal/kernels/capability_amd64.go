//go:build amd64

package kernels

import "golang.org/x/sys/cpu"

func init() {
	hasWideVectors = cpu.X86.HasAVX2
	initCapabilities()
}
