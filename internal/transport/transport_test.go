package transport

import (
	"errors"
	"net"
	"testing"
	"time"
)

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("broken pipe"), want: false},
		{name: "net timeout", err: fakeTimeoutErr{}, want: true},
		{name: "wrapped net timeout", err: &net.OpError{Op: "read", Err: fakeTimeoutErr{}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTCPConnReadTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	conn := &tcpConn{Conn: client}
	defer conn.Close()

	if err := conn.SetReadTimeout(20 * time.Millisecond); err != nil {
		t.Fatalf("SetReadTimeout() error = %v", err)
	}

	// Nothing written on the server side: the read must time out rather
	// than block.
	start := time.Now()
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if n != 0 {
		t.Errorf("Read() n = %d, want 0", n)
	}
	if !IsTimeout(err) {
		t.Errorf("Read() error = %v, want timeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Read() blocked for %v", elapsed)
	}
}

func TestTCPConnReadDelivery(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	conn := &tcpConn{Conn: client}
	defer conn.Close()

	if err := conn.SetReadTimeout(time.Second); err != nil {
		t.Fatalf("SetReadTimeout() error = %v", err)
	}

	go func() {
		server.Write([]byte{0x68, 0x08, 0x00})
	}()

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Read() n = %d, want 3", n)
	}
}

func TestDialTCPRefused(t *testing.T) {
	// Reserve a port and close it so the dial is refused.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	if _, err := DialTCP(addr, 500*time.Millisecond); err == nil {
		t.Error("DialTCP() to closed port succeeded, want error")
	}
}
