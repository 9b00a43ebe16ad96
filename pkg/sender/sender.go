package sender

import (
	"context"
	"fmt"
)

// Sender transmits datagram payloads to a destination fixed at open time.
// Implementations own the underlying socket for their entire lifetime.
type Sender interface {
	// Send transmits one payload as a single datagram and returns the
	// number of bytes the socket reported as written.
	Send(ctx context.Context, payload []byte) (int, error)

	// Close releases the underlying socket.
	Close() error
}

// BindError reports a failure to bind the local address: the port is
// already in use, or the address is invalid or unavailable.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// ConnectError reports a failure to connect the socket to its destination.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ShortWriteError reports a send whose byte count differs from the
// payload length.
type ShortWriteError struct {
	Expected int
	Wrote    int
}

func (e *ShortWriteError) Error() string {
	return fmt.Sprintf("short write: sent %d bytes, want %d", e.Wrote, e.Expected)
}
