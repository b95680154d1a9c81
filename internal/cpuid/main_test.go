package cpuid

import (
	"fmt"
	"os"
	"testing"
)

// TestMain prints CPU diagnostics so CI logs show which path the probe took.
func TestMain(m *testing.M) {
	f := Detect()

	fmt.Printf("=== CRC32C CPU Diagnostics ===\n")
	fmt.Printf("GOARCH=%s\n", f.GOARCH)
	fmt.Printf("  SSE4.2 (cpuid):     %v\n", f.SSE42)
	fmt.Printf("  SSE4.2 (x/sys/cpu): %v\n", f.SysSSE42)
	fmt.Printf("  PCLMULQDQ:          %v\n", f.PCLMULQDQ)
	fmt.Printf("  ARM64 CRC32:        %v\n", f.ARM64CRC32)
	fmt.Printf("==============================\n\n")

	os.Exit(m.Run())
}
