package protocol

// ValueKind selects the decode rule for a parameter value.
type ValueKind int

const (
	KindNone  ValueKind = iota // no value bytes
	KindInt                    // little-endian signed integer
	KindUint                   // little-endian unsigned integer
	KindFloat                  // little-endian IEEE 754 float
	KindBool                   // single byte, zero means OFF
	KindText                   // raw text, variable length
)

// TypeDescriptor describes how one 4-bit protocol type id is decoded.
type TypeDescriptor struct {
	Name  string
	Size  int // encoded size in bytes, 0 meaning variable/none
	Kind  ValueKind
	Float bool // floating-point quantity, rendered with two decimals
}

// TypeTable maps 4-bit type ids to descriptors. A table is treated as
// immutable once constructed; scans never modify it, so one table can be
// shared across decoders.
type TypeTable map[uint8]TypeDescriptor

// DefaultTypeTable returns the GazModem type table. Ids 0 and 8 are
// reserved and carry no value; ids 15 and above are unknown and cause
// the decoder to reject the parameter.
func DefaultTypeTable() TypeTable {
	return TypeTable{
		0:  {Name: "None", Size: 0, Kind: KindNone},
		1:  {Name: "SHORT INT", Size: 1, Kind: KindInt},
		2:  {Name: "INT", Size: 2, Kind: KindInt},
		3:  {Name: "LONG INT", Size: 4, Kind: KindInt},
		4:  {Name: "BYTE", Size: 1, Kind: KindUint},
		5:  {Name: "WORD", Size: 2, Kind: KindUint},
		6:  {Name: "DWORD", Size: 4, Kind: KindUint},
		7:  {Name: "SHORT REAL", Size: 4, Kind: KindFloat, Float: true},
		8:  {Name: "None", Size: 0, Kind: KindNone},
		9:  {Name: "LONG REAL", Size: 8, Kind: KindFloat, Float: true},
		10: {Name: "BOOLEAN", Size: 1, Kind: KindBool},
		11: {Name: "BCD", Size: 1, Kind: KindUint},
		12: {Name: "STRING", Size: 0, Kind: KindText},
		13: {Name: "INT 64", Size: 8, Kind: KindInt},
		14: {Name: "UINT 64", Size: 8, Kind: KindUint},
	}
}
