package mathkernel

import "golang.org/x/sys/cpu"

// Capabilities reports the SIMD features available on this CPU. It is
// informational only — dotProduct always runs the portable scalar path —
// and is surfaced through Models loading so an operator can see whether a
// future vectorized path would pay off on this host.
func Capabilities() string {
	switch {
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		return "avx2+fma"
	case cpu.ARM64.HasASIMD:
		return "neon"
	default:
		return "generic"
	}
}
