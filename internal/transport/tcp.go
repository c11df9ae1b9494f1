package transport

import (
	"fmt"
	"net"
	"time"
)

// DialTCP connects to a TCP-to-RS485 converter endpoint such as the
// PLUM EcoNet internet module (default port 8899). The returned Conn
// applies the configured read timeout as a per-Read deadline.
func DialTCP(addr string, timeout time.Duration) (Conn, error) {
	c, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &tcpConn{Conn: c}, nil
}

type tcpConn struct {
	net.Conn
	readTimeout time.Duration
}

func (c *tcpConn) SetReadTimeout(d time.Duration) error {
	c.readTimeout = d
	if d <= 0 {
		return c.Conn.SetReadDeadline(time.Time{})
	}
	return nil
}

func (c *tcpConn) Read(p []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}
