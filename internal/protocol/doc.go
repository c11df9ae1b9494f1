// Package protocol implements the GazModem/PLUM wire protocol used by
// heating system controllers.
//
// The protocol is undocumented; everything here was recovered from live
// bus captures of a PLUM EcoNet installation. Devices sit on a shared
// half-duplex RS-485 bus, usually reached through a TCP converter that
// relays the raw byte stream with no framing of its own.
//
// # Frame Format
//
// Every message is a single frame:
//
//	[0]     0x68          Start marker
//	[1-2]   length        dest+src+cmd+body byte count (little-endian)
//	[3-4]   dest          Destination address (little-endian)
//	[5-6]   src           Source address (little-endian)
//	[7]     cmd           Function code
//	[8+]    body          Variable-length body (length-5 bytes)
//	[N-3,2] checksum      CRC-16/XMODEM over bytes 1..N-4 (big-endian)
//	[N-1]   0x16          Stop marker
//
// Address 0xFFFF is broadcast. 0 is the touch panel master, 100 the room
// thermostat, 250 a computer. Command 0x02 is a parameter read request
// (body = sub-code 0x01 + little-endian index); 0x82 is the response.
//
// # Stream Parsing
//
// TryParseFrame extracts frames from an accumulated buffer. Because an
// observer attaches to the bus mid-stream, the parser distinguishes "not
// enough bytes yet" from "cannot be a frame": on ParseInvalid the caller
// drops exactly one leading byte and retries, which resynchronizes on
// the next genuine start marker.
//
// # Parameter Decoding
//
// A read response carries, after a 3-byte echo of the request: a
// NUL-terminated Latin-1 parameter name, a NUL-terminated unit string,
// an info byte (low nibble type id, bit 0x20 read/write flag), a signed
// decimal exponent, and the value encoded per the type table. Decoder
// turns this into a ParameterRecord or rejects the payload entirely;
// slots with an empty or "?" name are unassigned.
//
// All functions are stateless and safe for concurrent use; a Decoder
// only reads its immutable type table.
package protocol
