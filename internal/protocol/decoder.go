package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// respEchoLen is the length of the request echo (sub-code + index)
	// at the front of a read-response payload.
	respEchoLen = 3

	// maxExponent bounds the decimal exponent. Magnitudes above 6 only
	// show up in garbage decodes and are normalized to 0.
	maxExponent = 6

	// rwFlag in the info byte marks the parameter writable.
	rwFlag = 0x20

	// noValue is rendered when the declared type needs more value bytes
	// than the payload carries.
	noValue = "---"
)

// ParameterRecord is one fully decoded (device, index) result. Records
// are immutable once emitted; ownership passes to whoever consumes them.
type ParameterRecord struct {
	Device   uint16
	Index    uint16
	Name     string
	Value    string
	Exponent int
	Unit     string
	Type     string
	Writable bool
}

// Access returns the access mode as "RW" or "RO".
func (r *ParameterRecord) Access() string {
	if r.Writable {
		return "RW"
	}
	return "RO"
}

// String returns a human-readable representation of the record
func (r *ParameterRecord) String() string {
	return fmt.Sprintf("Param{dev=%d, idx=%d, name=%q, val=%s %s, type=%s, %s}",
		r.Device, r.Index, r.Name, r.Value, r.Unit, r.Type, r.Access())
}

// Decoder interprets read-response payloads against a type table.
type Decoder struct {
	types TypeTable
}

// NewDecoder creates a decoder bound to the given type table. Pass
// DefaultTypeTable() unless a scan needs a customized mapping.
func NewDecoder(types TypeTable) *Decoder {
	return &Decoder{types: types}
}

// Decode interprets one read-response payload (the frame body with the
// checksum and stop trailer already stripped by the caller) into a
// record. It returns nil when the payload does not describe an assigned
// parameter slot: empty or "?" names mark unassigned slots, and any
// structural failure rejects the whole payload. The decoder never emits
// a partially populated record.
func (d *Decoder) Decode(device, index uint16, payload []byte) *ParameterRecord {
	cursor := respEchoLen
	if len(payload) < cursor {
		return nil
	}

	name, cursor := readCString(payload, cursor)
	unit, cursor := readCString(payload, cursor)
	if name == "" || name == "?" {
		return nil
	}
	if len(payload) < cursor+2 {
		return nil
	}

	info := payload[cursor]
	exponent := int(int8(payload[cursor+1]))
	cursor += 2
	if exponent > maxExponent || exponent < -maxExponent {
		exponent = 0
	}

	desc, ok := d.types[info&0x0F]
	if !ok {
		return nil
	}

	rec := &ParameterRecord{
		Device:   device,
		Index:    index,
		Name:     name,
		Value:    noValue,
		Exponent: exponent,
		Unit:     unit,
		Type:     desc.Name,
		Writable: info&rwFlag != 0,
	}
	if desc.Size > 0 && len(payload) >= cursor+desc.Size {
		rec.Value = renderValue(desc, exponent, payload[cursor:cursor+desc.Size])
	}
	return rec
}

// readCString reads a NUL-terminated Latin-1 string starting at pos and
// returns the trimmed text with the cursor past the terminator. When no
// terminator exists the text is empty and the cursor moves to the end of
// the buffer.
func readCString(buf []byte, pos int) (string, int) {
	end := bytes.IndexByte(buf[pos:], 0)
	if end < 0 {
		return "", len(buf)
	}
	end += pos

	// Latin-1: each byte maps directly to the same Unicode code point.
	var b strings.Builder
	for _, c := range buf[pos:end] {
		b.WriteRune(rune(c))
	}
	return strings.TrimSpace(b.String()), end + 1
}

func renderValue(desc TypeDescriptor, exponent int, raw []byte) string {
	switch desc.Kind {
	case KindFloat:
		var v float64
		if desc.Size == 4 {
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw)))
		} else {
			v = math.Float64frombits(binary.LittleEndian.Uint64(raw))
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case KindBool:
		if raw[0] != 0 {
			return "ON"
		}
		return "OFF"
	case KindText:
		// Raw text values are not rendered numerically.
		return "TXT"
	case KindInt:
		v := decodeInt(raw)
		if exponent != 0 {
			return formatScaled(float64(v), exponent)
		}
		return strconv.FormatInt(v, 10)
	case KindUint:
		v := decodeUint(raw)
		if exponent != 0 {
			return formatScaled(float64(v), exponent)
		}
		return strconv.FormatUint(v, 10)
	}
	return noValue
}

func decodeInt(raw []byte) int64 {
	switch len(raw) {
	case 1:
		return int64(int8(raw[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(raw)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(raw)))
	default:
		return int64(binary.LittleEndian.Uint64(raw))
	}
}

func decodeUint(raw []byte) uint64 {
	switch len(raw) {
	case 1:
		return uint64(raw[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(raw))
	case 4:
		return uint64(binary.LittleEndian.Uint32(raw))
	default:
		return binary.LittleEndian.Uint64(raw)
	}
}

// formatScaled applies signed decimal scaling and renders the result in
// compact general format. The scaling is applied uniformly to all
// integer types, including wide unsigned ones, matching observed
// converter behavior.
func formatScaled(v float64, exponent int) string {
	return strconv.FormatFloat(v*math.Pow10(exponent), 'g', -1, 64)
}
