package binding

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/hupe1980/crc32c"
)

// Validation messages reported in ArgumentError.
const (
	MsgArgumentCount = "invalid number of arguments"
	MsgUseHardware   = "useHardwareCrc isn't a boolean value as expected"
	MsgInitialCRC    = "initial CRC-32C is not an integer value as expected"
	MsgObject        = "cannot compute CRC-32C for objects"
	MsgMissingData   = "input data is missing"
)

// MaxArgs is the largest accepted argument count.
const MaxArgs = 3

// ArgumentError reports a malformed call. Index is the offending argument
// position, or -1 when the call as a whole is wrong.
type ArgumentError struct {
	Index   int
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	return fmt.Sprintf("argument %d: %s", e.Index, e.Message)
}

// Args is a validated calculateCrc call.
type Args struct {
	UseHardware bool
	Data        []byte
	Initial     uint32
}

// ParseArgs validates positional arguments. The boolean result is false
// for an empty call, which checksums to 0 without reaching the engine.
func ParseArgs(args []json.RawMessage) (Args, bool, error) {
	switch {
	case len(args) == 0:
		return Args{}, false, nil
	case len(args) > MaxArgs:
		return Args{}, false, &ArgumentError{Index: -1, Message: MsgArgumentCount}
	}

	var a Args

	hw, ok := parseBool(args[0])
	if !ok {
		return Args{}, false, &ArgumentError{Index: 0, Message: MsgUseHardware}
	}
	a.UseHardware = hw

	if len(args) > 2 {
		seed, ok := parseUint32(args[2])
		if !ok {
			return Args{}, false, &ArgumentError{Index: 2, Message: MsgInitialCRC}
		}
		a.Initial = seed
	}

	if len(args) < 2 {
		return Args{}, false, &ArgumentError{Index: 1, Message: MsgMissingData}
	}
	data, err := parseData(args[1])
	if err != nil {
		return Args{}, false, err
	}
	a.Data = data

	return a, true, nil
}

// Calculate validates args and checksums them with the package-level
// engines.
func Calculate(args ...json.RawMessage) (uint32, error) {
	a, ok, err := ParseArgs(args)
	if err != nil || !ok {
		return 0, err
	}
	return crc32c.Checksum(a.UseHardware, a.Initial, a.Data), nil
}

// IsHardwareCrcSupported reports whether the hardware engine is backed by
// a native instruction on this CPU.
func IsHardwareCrcSupported() bool {
	return crc32c.IsHardwareSupported()
}

func parseBool(raw json.RawMessage) (bool, bool) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseUint32(raw json.RawMessage) (uint32, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
		return 0, false
	}
	return uint32(f), true
}

// bufferObject is the JSON form of a byte buffer, either
// {"type":"Buffer","data":[...]} or {"base64":"..."}.
type bufferObject struct {
	Type   string  `json:"type"`
	Data   []int   `json:"data"`
	Base64 *string `json:"base64"`
}

func parseData(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, &ArgumentError{Index: 1, Message: MsgMissingData}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &ArgumentError{Index: 1, Message: err.Error()}
		}
		return []byte(s), nil
	case '{':
		return parseBuffer(raw)
	case '[':
		return nil, &ArgumentError{Index: 1, Message: MsgObject}
	case 't', 'f', 'n':
		return []byte(raw), nil
	default:
		return formatNumber(raw)
	}
}

func parseBuffer(raw json.RawMessage) ([]byte, error) {
	var obj bufferObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &ArgumentError{Index: 1, Message: MsgObject}
	}

	switch {
	case obj.Base64 != nil:
		b, err := base64.StdEncoding.DecodeString(*obj.Base64)
		if err != nil {
			return nil, &ArgumentError{Index: 1, Message: "invalid base64 buffer: " + err.Error()}
		}
		return b, nil
	case obj.Type == "Buffer":
		b := make([]byte, len(obj.Data))
		for i, v := range obj.Data {
			if v < 0 || v > math.MaxUint8 {
				return nil, &ArgumentError{Index: 1, Message: fmt.Sprintf("buffer byte %d out of range: %d", i, v)}
			}
			b[i] = byte(v)
		}
		return b, nil
	}
	return nil, &ArgumentError{Index: 1, Message: MsgObject}
}

// formatNumber renders a JSON number the way a script runtime converts it
// to a string: integers without a fraction, exponents only at the extremes.
func formatNumber(raw json.RawMessage) ([]byte, error) {
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil, &ArgumentError{Index: 1, Message: "invalid number: " + string(raw)}
	}

	if f == 0 {
		return []byte("0"), nil
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go writes 1e+21 as "1e+21" and 1e-7 as "1e-07"; drop exponent padding.
	if i := bytes.LastIndexAny([]byte(s), "+-"); i > 0 && s[i+1] == '0' && len(s) > i+2 {
		s = s[:i+1] + s[i+2:]
	}
	return []byte(s), nil
}
