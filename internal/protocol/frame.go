package protocol

import (
	"encoding/binary"
	"fmt"
)

// GazModem frame constants (from live capture of a PLUM EcoNet bus)
const (
	StartByte = 0x68 // frame start marker
	StopByte  = 0x16 // frame stop marker

	CmdRead         = 0x02 // parameter read request
	CmdReadResponse = 0x82 // parameter read response

	// ReadSubcode is the fixed sub-code prefixed to read request bodies.
	ReadSubcode = 0x01

	// BroadcastAddr is the all-ones broadcast address. It never
	// identifies a concrete device.
	BroadcastAddr uint16 = 0xFFFF

	// headerLen counts dest + src + cmd, the fixed part covered by the
	// length field alongside the body.
	headerLen = 5

	// trailerLen counts the big-endian checksum plus the stop marker.
	trailerLen = 3

	// MaxFrameLength bounds the declared length field. Anything larger
	// is treated as line noise rather than a real frame.
	MaxFrameLength = 1024
)

// Frame is one complete GazModem wire message. The length field and
// checksum are computed on encode and verified on parse; they are not
// carried in the struct.
type Frame struct {
	Dest    uint16
	Src     uint16
	Command byte
	Body    []byte
}

// String returns a debug representation of the frame
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{dest=%d, src=%d, cmd=0x%02x, body=%d bytes}",
		f.Dest, f.Src, f.Command, len(f.Body))
}

// ParseStatus reports the outcome of TryParseFrame.
type ParseStatus int

const (
	// ParseOK means one complete, checksum-verified frame was extracted.
	ParseOK ParseStatus = iota
	// ParseNeedMore means the buffer holds a plausible frame prefix that
	// is not yet complete.
	ParseNeedMore
	// ParseInvalid means the buffer cannot begin with a valid frame. The
	// caller must discard exactly one leading byte and retry; that is the
	// resynchronization contract for mid-frame stream attachment.
	ParseInvalid
)

// EncodeRequest assembles a complete frame:
//
//	[0]     0x68          Start marker
//	[1-2]   length        dest+src+cmd+body byte count (little-endian)
//	[3-4]   dest          Destination address (little-endian)
//	[5-6]   src           Source address (little-endian)
//	[7]     cmd           Function code
//	[8+]    body          Command body
//	[N-3..] checksum      CRC-16/XMODEM of bytes 1..N-4 (big-endian)
//	[N-1]   0x16          Stop marker
func EncodeRequest(dest, src uint16, cmd byte, body []byte) []byte {
	length := headerLen + len(body)
	total := 1 + 2 + length + trailerLen

	frame := make([]byte, total)
	frame[0] = StartByte
	binary.LittleEndian.PutUint16(frame[1:3], uint16(length))
	binary.LittleEndian.PutUint16(frame[3:5], dest)
	binary.LittleEndian.PutUint16(frame[5:7], src)
	frame[7] = cmd
	copy(frame[8:], body)

	crc := Checksum(frame[1 : 3+length])
	binary.BigEndian.PutUint16(frame[total-trailerLen:total-1], crc)
	frame[total-1] = StopByte

	return frame
}

// EncodeReadRequest builds the read request for one parameter index.
// The body is the fixed sub-code followed by the little-endian index.
func EncodeReadRequest(dest, src, index uint16) []byte {
	body := make([]byte, 3)
	body[0] = ReadSubcode
	binary.LittleEndian.PutUint16(body[1:3], index)
	return EncodeRequest(dest, src, CmdRead, body)
}

// TryParseFrame attempts to extract one complete frame from the front of
// buf. On ParseOK it returns the frame and the number of bytes consumed.
// The frame's body is copied, so the caller may reuse buf.
func TryParseFrame(buf []byte) (*Frame, int, ParseStatus) {
	if len(buf) == 0 {
		return nil, 0, ParseNeedMore
	}
	if buf[0] != StartByte {
		return nil, 0, ParseInvalid
	}
	if len(buf) < 3 {
		return nil, 0, ParseNeedMore
	}

	length := int(binary.LittleEndian.Uint16(buf[1:3]))
	if length < headerLen || length > MaxFrameLength {
		return nil, 0, ParseInvalid
	}

	total := 1 + 2 + length + trailerLen
	if len(buf) < total {
		return nil, 0, ParseNeedMore
	}

	if buf[total-1] != StopByte {
		return nil, 0, ParseInvalid
	}
	want := binary.BigEndian.Uint16(buf[total-trailerLen : total-1])
	if Checksum(buf[1:3+length]) != want {
		return nil, 0, ParseInvalid
	}

	frame := &Frame{
		Dest:    binary.LittleEndian.Uint16(buf[3:5]),
		Src:     binary.LittleEndian.Uint16(buf[5:7]),
		Command: buf[7],
	}
	if length > headerLen {
		frame.Body = make([]byte, length-headerLen)
		copy(frame.Body, buf[8:3+length])
	}

	return frame, total, ParseOK
}
