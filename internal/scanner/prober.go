package scanner

import (
	"bytes"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/gazscan/internal/protocol"
	"github.com/muurk/gazscan/internal/transport"
)

const (
	flushReadTimeout = 10 * time.Millisecond

	// flushMaxReads bounds the pre-probe drain so a very chatty bus
	// cannot stall probing.
	flushMaxReads = 8

	probeReadSize = 1024

	// respHeaderLen spans start marker through command byte; the
	// payload begins right after. respTrailerLen is checksum + stop.
	respHeaderLen  = 8
	respTrailerLen = 3

	// statusEvery throttles per-index progress messages.
	statusEvery = 10
)

// probeDevice walks the parameter index range of one device, emitting a
// record for every assigned slot. A run of StreakLimit consecutive
// empty probes is taken as the end of the device's populated region and
// the rest of the range is skipped; that is the difference between a
// scan that takes minutes and one that takes hours.
func (s *Scanner) probeDevice(conn transport.Conn, target uint16, baseProgress, span float64) {
	streak := 0
	total := s.cfg.IndexEnd - s.cfg.IndexStart

	for idx := s.cfg.IndexStart; idx < s.cfg.IndexEnd; idx++ {
		if !s.running.Load() {
			return
		}
		if (idx-s.cfg.IndexStart)%statusEvery == 0 {
			prog := baseProgress + float64(idx-s.cfg.IndexStart)/float64(total)*span
			s.emitStatus(fmt.Sprintf("Device %d : Index %d...", target, idx), prog)
		}
		if streak >= s.cfg.StreakLimit {
			s.emitStatus(fmt.Sprintf("Device %d : Empty zone detected. Skipping device.", target), -1)
			s.log.Info("empty zone, skipping device",
				zap.Uint16("device", target),
				zap.Int("index", idx))
			return
		}

		time.Sleep(s.cfg.ProbeDelay)

		if rec := s.probeIndex(conn, target, uint16(idx)); rec != nil {
			s.emitRecord(*rec)
			streak = 0
		} else {
			streak++
		}
	}
}

// probeIndex sends one read request and decodes the response. Timeouts,
// transport errors and undecodable responses all report a failed probe
// (nil); none of them aborts the scan.
func (s *Scanner) probeIndex(conn transport.Conn, target, index uint16) *protocol.ParameterRecord {
	s.flush(conn)

	req := protocol.EncodeReadRequest(target, s.cfg.SourceAddr, index)
	if _, err := conn.Write(req); err != nil {
		s.log.Debug("probe write failed",
			zap.Uint16("device", target),
			zap.Uint16("index", index),
			zap.Error(err))
		return nil
	}

	if err := conn.SetReadTimeout(s.cfg.ProbeTimeout); err != nil {
		return nil
	}
	resp := make([]byte, probeReadSize)
	n, err := conn.Read(resp)
	if err != nil || n == 0 {
		if err != nil && !transport.IsTimeout(err) {
			s.log.Debug("probe read failed",
				zap.Uint16("device", target),
				zap.Uint16("index", index),
				zap.Error(err))
		}
		return nil
	}

	payload, ok := extractReadResponse(resp[:n])
	if !ok {
		return nil
	}
	return s.dec.Decode(target, index, payload)
}

// flush drains unsolicited bytes buffered on the connection so stale
// data is not mistaken for the next probe's response.
func (s *Scanner) flush(conn transport.Conn) {
	if err := conn.SetReadTimeout(flushReadTimeout); err != nil {
		return
	}
	scratch := make([]byte, readChunkSize)
	for i := 0; i < flushMaxReads; i++ {
		n, err := conn.Read(scratch)
		if n == 0 || err != nil {
			return
		}
	}
}

// extractReadResponse locates a read-response frame inside resp, which
// may carry leading noise, and returns its payload with the request
// echo intact and the checksum/stop trailer removed.
func extractReadResponse(resp []byte) ([]byte, bool) {
	pos := bytes.IndexByte(resp, protocol.StartByte)
	if pos < 0 {
		return nil, false
	}
	if len(resp) <= pos+respHeaderLen {
		return nil, false
	}
	if resp[pos+respHeaderLen-1] != protocol.CmdReadResponse {
		return nil, false
	}
	end := len(resp) - respTrailerLen
	if end < pos+respHeaderLen {
		return nil, false
	}
	return resp[pos+respHeaderLen : end], true
}
