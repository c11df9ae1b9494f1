package scanner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/gazscan/internal/protocol"
	"github.com/muurk/gazscan/internal/transport"
)

const (
	sniffReadTimeout = 200 * time.Millisecond
	readChunkSize    = 4096
)

// sniff passively observes bus traffic for the configured window and
// returns the set of device addresses seen as frame sources or
// destinations. Read failures are treated as "no data this iteration";
// sniffing never fails, it only ends.
func (s *Scanner) sniff(conn transport.Conn) map[uint16]struct{} {
	seen := make(map[uint16]struct{})

	if err := conn.SetReadTimeout(sniffReadTimeout); err != nil {
		s.log.Debug("set read timeout failed", zap.Error(err))
	}

	window := s.cfg.SniffWindow
	s.emitStatus(fmt.Sprintf("PHASE 1: Network Sniffing (%ds)...", int(window.Seconds())), 0)

	start := time.Now()
	var buf []byte
	chunk := make([]byte, readChunkSize)
	var lastStatus time.Time

	for s.running.Load() {
		elapsed := time.Since(start)
		if elapsed >= window {
			break
		}

		if time.Since(lastStatus) >= time.Second {
			remaining := (window - elapsed).Round(time.Second)
			// Sniffing owns the lower half of the progress range.
			prog := elapsed.Seconds() / window.Seconds() * 50
			s.emitStatus(fmt.Sprintf("Listening... %s remaining", remaining), prog)
			lastStatus = time.Now()
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = s.consumeFrames(buf, seen)
		}
		if err != nil && !transport.IsTimeout(err) {
			// Recoverable by contract. Pace the loop so a dead
			// connection does not spin until the window ends.
			s.log.Debug("sniff read error", zap.Error(err))
			time.Sleep(sniffReadTimeout)
		}
	}

	return seen
}

// consumeFrames extracts every complete frame from buf, recording the
// addresses it carries, and returns the unconsumed tail. Invalid data
// resynchronizes by dropping a single leading byte.
func (s *Scanner) consumeFrames(buf []byte, seen map[uint16]struct{}) []byte {
	for len(buf) > 0 {
		frame, n, status := protocol.TryParseFrame(buf)
		switch status {
		case protocol.ParseOK:
			s.observe(frame, seen)
			buf = buf[n:]
		case protocol.ParseInvalid:
			buf = buf[1:]
		default:
			return buf
		}
	}
	return buf
}

// observe records a frame's source and destination addresses, skipping
// broadcast and the scanner's own address.
func (s *Scanner) observe(frame *protocol.Frame, seen map[uint16]struct{}) {
	for _, addr := range [2]uint16{frame.Src, frame.Dest} {
		if addr == protocol.BroadcastAddr || addr == s.cfg.SourceAddr {
			continue
		}
		if _, ok := seen[addr]; !ok {
			seen[addr] = struct{}{}
			s.log.Info("device discovered",
				zap.Uint16("addr", addr),
				zap.Stringer("frame", frame))
		}
	}
}
