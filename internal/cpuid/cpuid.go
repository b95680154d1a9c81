package cpuid

const (
	// FeatureLeaf is the CPUID leaf that reports the standard feature flags.
	FeatureLeaf uint32 = 1
	// SSE42Register is the index of ECX in a Registers tuple.
	SSE42Register = 2
	// SSE42Bit is the ECX bit announcing SSE4.2 (and with it the CRC32 instruction).
	SSE42Bit = 20
)

// Registers holds EAX, EBX, ECX and EDX as returned by one CPUID query.
type Registers [4]uint32

// QueryFunc issues a CPUID query for the given leaf.
type QueryFunc func(leaf uint32) Registers

// Query issues CPUID for leaf on the running CPU.
// Architectures without CPUID return all-zero registers.
func Query(leaf uint32) Registers {
	return query(leaf)
}

// HasSSE42 reports whether the feature flags returned by q announce SSE4.2.
// A nil q behaves like a CPU without CPUID.
func HasSSE42(q QueryFunc) bool {
	if q == nil {
		return false
	}
	reg := q(FeatureLeaf)
	return (reg[SSE42Register]>>SSE42Bit)&1 == 1
}

// Probed once at init; no mutex needed since init runs before any caller.
var supported bool

func init() {
	supported = HasSSE42(Query)
}

// Supported returns the cached result of probing the running CPU.
func Supported() bool {
	return supported
}
