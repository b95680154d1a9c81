//go:build !386 && !amd64

package cpuid

func query(uint32) Registers {
	return Registers{}
}
