package transport

import (
	"errors"
	"io"
	"net"
	"os"
	"time"
)

// Conn is the byte-stream link to the GazModem bus. Both the TCP
// converter link and a direct serial port satisfy it. The bus is
// half-duplex: callers must finish one request/response exchange before
// starting the next.
type Conn interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds subsequent Read calls. Zero or negative
	// means block indefinitely. Depending on the underlying transport a
	// timed-out Read reports either zero bytes with no error or a
	// timeout error; IsTimeout recognizes the latter.
	SetReadTimeout(d time.Duration) error
}

// IsTimeout reports whether err is a read/write timeout rather than a
// hard transport failure. Timeouts are expected during sniffing and
// probing (silence on the bus is normal) and are never escalated.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
