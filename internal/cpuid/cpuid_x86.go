//go:build 386 || amd64

package cpuid

// cpuidx is implemented in cpuid_x86.s.
//
//go:noescape
func cpuidx(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

func query(leaf uint32) Registers {
	a, b, c, d := cpuidx(leaf, 0)
	return Registers{a, b, c, d}
}
