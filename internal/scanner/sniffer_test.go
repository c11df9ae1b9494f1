package scanner

import (
	"testing"
	"time"

	"github.com/muurk/gazscan/internal/protocol"
)

func TestSniffDiscoversAddresses(t *testing.T) {
	// Noise, a frame from device 5 to 12, a broadcast from device 7 and a
	// frame sent by the scanner's own address, all in one stream.
	var stream []byte
	stream = append(stream, 0xDE, 0xAD, 0xBE, 0xEF)
	stream = append(stream, protocol.EncodeRequest(12, 5, 0x01, []byte{0x42})...)
	stream = append(stream, protocol.EncodeRequest(protocol.BroadcastAddr, 7, 0x01, nil)...)
	stream = append(stream, protocol.EncodeRequest(9, 0, protocol.CmdRead, []byte{0x01, 0x00, 0x00})...)

	conn := &scriptConn{pending: stream}

	cfg := testConfig()
	cfg.SniffWindow = 50 * time.Millisecond
	s := New(cfg, nil)
	s.running.Store(true)

	seen := s.sniff(conn)

	for _, want := range []uint16{5, 7, 9, 12} {
		if _, ok := seen[want]; !ok {
			t.Errorf("address %d not discovered, seen = %v", want, seen)
		}
	}
	if _, ok := seen[protocol.BroadcastAddr]; ok {
		t.Error("broadcast address recorded as a device")
	}
	if _, ok := seen[0]; ok {
		t.Error("own source address recorded as a device")
	}
}

func TestSniffSilentBus(t *testing.T) {
	conn := &scriptConn{}

	cfg := testConfig()
	cfg.SniffWindow = 30 * time.Millisecond
	s := New(cfg, nil)
	s.running.Store(true)

	if seen := s.sniff(conn); len(seen) != 0 {
		t.Errorf("seen = %v, want empty", seen)
	}
}

func TestConsumeFramesPartialDelivery(t *testing.T) {
	frame := protocol.EncodeRequest(3, 8, 0x01, []byte{0x10, 0x20})

	s := New(testConfig(), nil)
	seen := make(map[uint16]struct{})

	// First half of the frame: nothing parses, nothing is dropped.
	buf := append([]byte(nil), frame[:6]...)
	buf = s.consumeFrames(buf, seen)
	if len(buf) != 6 {
		t.Fatalf("partial frame consumed: %d bytes left, want 6", len(buf))
	}
	if len(seen) != 0 {
		t.Fatalf("seen = %v before frame completed", seen)
	}

	// Remainder arrives, the frame parses whole.
	buf = append(buf, frame[6:]...)
	buf = s.consumeFrames(buf, seen)
	if len(buf) != 0 {
		t.Errorf("%d bytes left after complete frame, want 0", len(buf))
	}
	if _, ok := seen[8]; !ok {
		t.Errorf("source address missing, seen = %v", seen)
	}
	if _, ok := seen[3]; !ok {
		t.Errorf("destination address missing, seen = %v", seen)
	}
}

func TestConsumeFramesCorruptedThenValid(t *testing.T) {
	frame := protocol.EncodeRequest(2, 1, 0x01, nil)

	// A frame with a flipped checksum byte, then a good one. The parser
	// resynchronizes by shedding the bad bytes one at a time.
	bad := append([]byte(nil), frame...)
	bad[len(bad)-2] ^= 0xFF

	s := New(testConfig(), nil)
	seen := make(map[uint16]struct{})
	buf := s.consumeFrames(append(bad, frame...), seen)

	if len(buf) != 0 {
		t.Errorf("%d bytes left, want 0", len(buf))
	}
	if _, ok := seen[1]; !ok {
		t.Errorf("device behind corrupted prefix not discovered, seen = %v", seen)
	}
}
