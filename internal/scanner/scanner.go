package scanner

import (
	"fmt"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/muurk/gazscan/internal/protocol"
	"github.com/muurk/gazscan/internal/transport"
)

const (
	statusBuffer = 64
	recordBuffer = 1024
)

// DialFunc opens the transport for a scan. Tests substitute scripted
// in-memory connections.
type DialFunc func(cfg Config) (transport.Conn, error)

func defaultDial(cfg Config) (transport.Conn, error) {
	if cfg.SerialPort != "" {
		return transport.OpenSerial(cfg.SerialPort, cfg.BaudRate)
	}
	return transport.DialTCP(cfg.Endpoint, cfg.DialTimeout)
}

// Scanner owns one scan: it connects, passively sniffs the bus for
// device addresses, resolves the target list and actively probes each
// device's parameter index space. Results and progress flow through the
// Status and Records channels; both are closed when the scan ends, so
// consumers can range over them.
//
// The whole scan runs on a single worker goroutine. The bus is
// half-duplex with at most one outstanding request, so there is nothing
// to parallelize. The worker never blocks on a slow consumer: when a
// channel buffer is full the update is dropped (and logged).
type Scanner struct {
	cfg  Config
	dec  *protocol.Decoder
	dial DialFunc
	log  *zap.Logger

	status  chan Status
	records chan protocol.ParameterRecord

	// running is the cooperative cancellation flag. The worker reads it
	// at phase boundaries and at the top of each probe iteration; an
	// in-flight exchange is allowed to finish.
	running atomic.Bool

	// phase is written by the worker goroutine only.
	phase Phase
}

// New creates a Scanner for one scan. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.applyDefaults()
	return &Scanner{
		cfg:     cfg,
		dec:     protocol.NewDecoder(protocol.DefaultTypeTable()),
		dial:    defaultDial,
		log:     logger,
		status:  make(chan Status, statusBuffer),
		records: make(chan protocol.ParameterRecord, recordBuffer),
	}
}

// Status returns the notification channel. Closed when the scan ends.
func (s *Scanner) Status() <-chan Status { return s.status }

// Records returns the decoded parameter channel, in emission order:
// device-major, index-ascending per device. Closed when the scan ends.
func (s *Scanner) Records() <-chan protocol.ParameterRecord { return s.records }

// Start launches the scan worker. A Scanner runs exactly one scan and
// is not reused.
func (s *Scanner) Start() {
	s.running.Store(true)
	go s.run()
}

// Stop requests cooperative cancellation. Safe to call from any
// goroutine, and more than once.
func (s *Scanner) Stop() {
	s.running.Store(false)
}

func (s *Scanner) run() {
	defer close(s.records)
	defer close(s.status)

	s.setPhase(PhaseConnecting)
	conn, err := s.dial(s.cfg)
	if err != nil {
		// The only error a scan surfaces as terminal: without a
		// connection there is nothing to recover into.
		s.log.Error("connection failed", zap.Error(err))
		s.emitStatus(fmt.Sprintf("Connection Error: %v", err), -1)
		s.setPhase(PhaseCompleted)
		return
	}
	defer conn.Close()

	s.setPhase(PhaseSniffing)
	seen := s.sniff(conn)
	if !s.running.Load() {
		s.setPhase(PhaseCancelled)
		return
	}

	s.setPhase(PhaseResolving)
	devices := s.resolve(seen)

	s.setPhase(PhaseProbing)
	total := len(devices)
	for i, dev := range devices {
		if !s.running.Load() {
			s.setPhase(PhaseCancelled)
			return
		}
		// Probing owns the upper half of the progress range, split
		// evenly across devices.
		base := 50 + float64(i)/float64(total)*50
		span := 50 / float64(total)
		s.emitStatus(fmt.Sprintf("PHASE 2: Scanning Device %d (%d/%d)", dev, i+1, total), base)
		s.probeDevice(conn, dev, base, span)
	}

	if !s.running.Load() {
		s.setPhase(PhaseCancelled)
		return
	}
	s.emitStatus("SCAN COMPLETED!", 100)
	s.setPhase(PhaseCompleted)
	s.running.Store(false)
}

// resolve freezes the probing target list: the sniffed set, or the
// fallback set if the bus stayed silent, always in ascending address
// order for reproducible scans.
func (s *Scanner) resolve(seen map[uint16]struct{}) []uint16 {
	var devices []uint16
	if len(seen) == 0 {
		devices = append(devices, s.cfg.Fallback...)
		sort.Slice(devices, func(i, j int) bool { return devices[i] < devices[j] })
		s.emitStatus(fmt.Sprintf("No traffic detected. Forcing scan on IDs %v.", devices), -1)
		return devices
	}
	for dev := range seen {
		devices = append(devices, dev)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i] < devices[j] })
	s.emitStatus(fmt.Sprintf("Devices detected: %v", devices), -1)
	return devices
}

// emitStatus sends a notification without ever blocking the worker.
// A negative progress marks a message that does not move the bar.
func (s *Scanner) emitStatus(msg string, progress float64) {
	st := Status{Phase: s.phase, Message: msg}
	if progress >= 0 {
		st.Progress = progress
		st.HasProgress = true
	}
	select {
	case s.status <- st:
	default:
		s.log.Debug("status dropped", zap.String("message", msg))
	}
}

// emitRecord hands a decoded record to the consumer without blocking.
func (s *Scanner) emitRecord(rec protocol.ParameterRecord) {
	select {
	case s.records <- rec:
	default:
		s.log.Warn("record dropped, consumer not keeping up",
			zap.Uint16("device", rec.Device),
			zap.Uint16("index", rec.Index))
	}
}

func (s *Scanner) setPhase(p Phase) {
	s.phase = p
	s.log.Debug("phase change", zap.Stringer("phase", p))
}
