package cpuid

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features is a diagnostic snapshot of the CRC-related CPU capabilities.
//
// Only SSE42 drives engine selection; the other fields are reported for
// logging and the CLI's features command.
type Features struct {
	GOARCH string `json:"goarch"`
	// SSE42 is the raw CPUID probe result.
	SSE42 bool `json:"sse42"`
	// SysSSE42 is golang.org/x/sys/cpu's view of the same flag.
	SysSSE42   bool `json:"sys_sse42"`
	PCLMULQDQ  bool `json:"pclmulqdq"`
	ARM64CRC32 bool `json:"arm64_crc32"`
}

// Consistent reports whether the raw probe and x/sys/cpu agree on SSE4.2.
func (f Features) Consistent() bool {
	return f.SSE42 == f.SysSSE42
}

// Detect returns the feature snapshot of the running CPU.
func Detect() Features {
	return Features{
		GOARCH:     runtime.GOARCH,
		SSE42:      Supported(),
		SysSSE42:   cpu.X86.HasSSE42,
		PCLMULQDQ:  cpu.X86.HasPCLMULQDQ,
		ARM64CRC32: cpu.ARM64.HasCRC32,
	}
}
