package crc32c

import (
	"hash/crc32"
	"strings"

	"github.com/hupe1980/crc32c/internal/castagnoli"
)

// Kind tags a checksum engine.
type Kind uint8

const (
	// Auto selects Hardware when the CPU supports it and Software otherwise.
	Auto Kind = iota
	// Software is the portable slicing-by-8 table engine.
	Software
	// Hardware uses the CPU's CRC32 instruction.
	Hardware
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Auto:
		return "auto"
	case Software:
		return "software"
	case Hardware:
		return "hardware"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind value.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return Auto, true
	case "software", "sw", "table":
		return Software, true
	case "hardware", "hw", "sse42":
		return Hardware, true
	default:
		return Auto, false
	}
}

// Engine computes CRC-32C checksums.
//
// Update extends the finished checksum crc with p; a zero crc starts a new
// checksum. Implementations must be safe for concurrent use.
type Engine interface {
	Kind() Kind
	Update(crc uint32, p []byte) uint32
}

type softwareEngine struct{}

func (softwareEngine) Kind() Kind { return Software }

func (softwareEngine) Update(crc uint32, p []byte) uint32 {
	return castagnoli.Update(crc, p)
}

// The standard library issues SSE4.2 CRC32 on amd64 and the CRC32C
// instructions on arm64 for this table.
var hardwareTable = crc32.MakeTable(crc32.Castagnoli)

type hardwareEngine struct{}

func (hardwareEngine) Kind() Kind { return Hardware }

func (hardwareEngine) Update(crc uint32, p []byte) uint32 {
	return crc32.Update(crc, hardwareTable, p)
}

// SoftwareEngine returns the table-driven engine.
func SoftwareEngine() Engine { return softwareEngine{} }

// HardwareEngine returns the hardware-accelerated engine.
//
// It does not check IsHardwareSupported; callers decide.
func HardwareEngine() Engine { return hardwareEngine{} }

// EngineFor returns HardwareEngine when useHardware is set and
// SoftwareEngine otherwise.
func EngineFor(useHardware bool) Engine {
	if useHardware {
		return hardwareEngine{}
	}
	return softwareEngine{}
}
