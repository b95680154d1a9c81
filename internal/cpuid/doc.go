// Package cpuid detects whether the CPU provides the SSE4.2 CRC32 instruction.
//
// Detection issues CPUID with the standard feature-flag leaf (1) and checks
// bit 20 of ECX. On architectures without a CPUID instruction every register
// reads as zero, so hardware acceleration is reported as unavailable instead
// of failing.
//
// The probe runs once at package init and the result is cached in a
// package-level variable; HasSSE42 accepts an injectable QueryFunc so callers
// can evaluate both outcomes without the matching hardware.
package cpuid
