package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the GazModem bus rate (9600 8N1).
const DefaultBaudRate = 9600

// OpenSerial opens a local RS-485 serial port as the bus link, for
// setups with a USB adapter wired directly to the bus instead of a TCP
// converter. A timed-out serial Read returns zero bytes with no error.
func OpenSerial(device string, baud int) (Conn, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}
	return &serialConn{port: port}, nil
}

type serialConn struct {
	port serial.Port
}

func (c *serialConn) Read(p []byte) (int, error)  { return c.port.Read(p) }
func (c *serialConn) Write(p []byte) (int, error) { return c.port.Write(p) }
func (c *serialConn) Close() error                { return c.port.Close() }

func (c *serialConn) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return c.port.SetReadTimeout(serial.NoTimeout)
	}
	return c.port.SetReadTimeout(d)
}
