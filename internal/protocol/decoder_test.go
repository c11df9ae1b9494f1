package protocol

import (
	"encoding/binary"
	"math"
	"testing"
)

// buildPayload assembles a read-response payload: request echo, name,
// unit, info byte, exponent byte, value bytes.
func buildPayload(name, unit string, info byte, exponent int8, value []byte) []byte {
	payload := []byte{ReadSubcode, 0x00, 0x00}
	payload = append(payload, []byte(name)...)
	payload = append(payload, 0x00)
	payload = append(payload, []byte(unit)...)
	payload = append(payload, 0x00)
	payload = append(payload, info, byte(exponent))
	payload = append(payload, value...)
	return payload
}

func float32LE(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func TestDecode(t *testing.T) {
	dec := NewDecoder(DefaultTypeTable())

	tests := []struct {
		name    string
		payload []byte
		want    *ParameterRecord
	}{
		{
			name:    "short real with unit",
			payload: buildPayload("SetTemp", "C", 0x07, 0, float32LE(21.5)),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "SetTemp", Value: "21.50",
				Exponent: 0, Unit: "C", Type: "SHORT REAL", Writable: false,
			},
		},
		{
			name:    "writable word",
			payload: buildPayload("PumpSpeed", "%", 0x25, 0, []byte{0x64, 0x00}),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "PumpSpeed", Value: "100",
				Exponent: 0, Unit: "%", Type: "WORD", Writable: true,
			},
		},
		{
			name:    "boolean on",
			payload: buildPayload("PumpActive", "", 0x0A, 0, []byte{0x01}),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "PumpActive", Value: "ON",
				Exponent: 0, Unit: "", Type: "BOOLEAN", Writable: false,
			},
		},
		{
			name:    "boolean off",
			payload: buildPayload("PumpActive", "", 0x0A, 0, []byte{0x00}),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "PumpActive", Value: "OFF",
				Exponent: 0, Unit: "", Type: "BOOLEAN", Writable: false,
			},
		},
		{
			name:    "negative exponent scales integer",
			payload: buildPayload("Pressure", "bar", 0x02, -1, []byte{0xD7, 0x00}), // 215 * 10^-1
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "Pressure", Value: "21.5",
				Exponent: -1, Unit: "bar", Type: "INT", Writable: false,
			},
		},
		{
			name:    "positive exponent scales integer",
			payload: buildPayload("Energy", "Wh", 0x05, 3, []byte{0x2A, 0x00}), // 42 * 10^3
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "Energy", Value: "42000",
				Exponent: 3, Unit: "Wh", Type: "WORD", Writable: false,
			},
		},
		{
			name:    "out of range exponent clamps to zero",
			payload: buildPayload("Counter", "", 0x05, 113, []byte{0x2A, 0x00}),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "Counter", Value: "42",
				Exponent: 0, Unit: "", Type: "WORD", Writable: false,
			},
		},
		{
			name:    "negative out of range exponent clamps to zero",
			payload: buildPayload("Counter", "", 0x05, -7, []byte{0x2A, 0x00}),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "Counter", Value: "42",
				Exponent: 0, Unit: "", Type: "WORD", Writable: false,
			},
		},
		{
			name:    "signed byte value",
			payload: buildPayload("Trim", "K", 0x01, 0, []byte{0xFB}), // int8 -5
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "Trim", Value: "-5",
				Exponent: 0, Unit: "K", Type: "SHORT INT", Writable: false,
			},
		},
		{
			name:    "truncated value renders placeholder",
			payload: buildPayload("LongVal", "", 0x09, 0, []byte{0x01, 0x02}), // LONG REAL needs 8
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "LongVal", Value: "---",
				Exponent: 0, Unit: "", Type: "LONG REAL", Writable: false,
			},
		},
		{
			name:    "reserved type has no value",
			payload: buildPayload("Slot", "", 0x00, 0, nil),
			want: &ParameterRecord{
				Device: 5, Index: 3, Name: "Slot", Value: "---",
				Exponent: 0, Unit: "", Type: "None", Writable: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dec.Decode(5, 3, tt.payload)
			if got == nil {
				t.Fatal("Decode() = nil, want record")
			}
			if *got != *tt.want {
				t.Errorf("Decode() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	dec := NewDecoder(DefaultTypeTable())

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "nil payload", payload: nil},
		{name: "shorter than echo", payload: []byte{0x01, 0x00}},
		{name: "empty name", payload: buildPayload("", "C", 0x07, 0, float32LE(1))},
		{name: "placeholder name", payload: buildPayload("?", "C", 0x07, 0, float32LE(1))},
		{name: "unterminated name", payload: []byte{0x01, 0x00, 0x00, 'S', 'e', 't'}},
		{name: "missing info and exponent", payload: append([]byte{0x01, 0x00, 0x00, 'X', 0x00, 0x00}, byte(0x07))},
		{name: "unknown type id", payload: buildPayload("Mystery", "", 0x0F, 0, []byte{0x01})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dec.Decode(1, 0, tt.payload); got != nil {
				t.Errorf("Decode() = %+v, want nil", *got)
			}
		})
	}
}

func TestDecodeTrimsAndLatin1(t *testing.T) {
	dec := NewDecoder(DefaultTypeTable())

	// Latin-1 degree sign (0xB0) in the unit, padded name.
	payload := []byte{0x01, 0x00, 0x00}
	payload = append(payload, []byte("  Temp  ")...)
	payload = append(payload, 0x00, 0xB0, 'C', 0x00, 0x02, 0x00, 0x7F, 0x00)

	rec := dec.Decode(1, 0, payload)
	if rec == nil {
		t.Fatal("Decode() = nil, want record")
	}
	if rec.Name != "Temp" {
		t.Errorf("name = %q, want %q", rec.Name, "Temp")
	}
	if rec.Unit != "°C" {
		t.Errorf("unit = %q, want %q", rec.Unit, "°C")
	}
	if rec.Value != "127" {
		t.Errorf("value = %q, want %q", rec.Value, "127")
	}
}

func TestRecordAccess(t *testing.T) {
	ro := &ParameterRecord{}
	if ro.Access() != "RO" {
		t.Errorf("Access() = %q, want RO", ro.Access())
	}
	rw := &ParameterRecord{Writable: true}
	if rw.Access() != "RW" {
		t.Errorf("Access() = %q, want RW", rw.Access())
	}
}
