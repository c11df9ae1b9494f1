// Package transport provides the byte-stream link to the GazModem bus.
//
// Two transports are supported: a TCP connection to an RS-485 converter
// (the common setup, default endpoint port 8899) and a directly attached
// serial port. Both satisfy the Conn interface, which adds a read
// timeout to io.ReadWriteCloser; the scanner relies on short-timeout
// reads to poll a bus that is silent most of the time.
//
// The two transports signal a timed-out read differently: TCP reads
// return a net.Error with Timeout() true, serial reads return zero
// bytes with a nil error. Callers treat both as "no data yet" and can
// use IsTimeout to tell timeouts apart from hard failures.
package transport
