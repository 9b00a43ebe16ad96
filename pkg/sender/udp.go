package sender

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/bft-labs/udpsend/pkg/log"
)

// UDPSender implements Sender over an IPv4 UDP socket that is bound to a
// local address and connected to a fixed destination. Connecting a UDP
// socket fixes the destination for every subsequent unaddressed send.
type UDPSender struct {
	conn   *net.UDPConn
	logger log.Logger
}

// Open binds a UDP socket to bindAddr and connects it to connectAddr.
// The two addresses may be equal, in which case the socket sends to
// itself and delivered datagrams land in its own receive queue.
func Open(bindAddr, connectAddr string, logger log.Logger) (*UDPSender, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	laddr, err := net.ResolveUDPAddr("udp4", bindAddr)
	if err != nil {
		return nil, &BindError{Addr: bindAddr, Err: err}
	}
	raddr, err := net.ResolveUDPAddr("udp4", connectAddr)
	if err != nil {
		return nil, &ConnectError{Addr: connectAddr, Err: err}
	}

	// DialUDP with an explicit local address performs socket, bind and
	// connect in one call. Attribute failures to the phase that produced
	// them: address-availability errnos come from bind.
	conn, err := net.DialUDP("udp4", laddr, raddr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) || errors.Is(err, syscall.EADDRNOTAVAIL) {
			return nil, &BindError{Addr: bindAddr, Err: err}
		}
		return nil, &ConnectError{Addr: connectAddr, Err: err}
	}

	logger.Debug("socket open",
		log.String("local", conn.LocalAddr().String()),
		log.String("remote", conn.RemoteAddr().String()),
	)

	return &UDPSender{conn: conn, logger: logger}, nil
}

// Send transmits one payload and verifies the byte count the socket
// reports. A count that differs from the payload length is returned as a
// ShortWriteError.
func (s *UDPSender) Send(ctx context.Context, payload []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetWriteDeadline(deadline); err != nil {
			return 0, fmt.Errorf("set write deadline: %w", err)
		}
	}

	n, err := s.conn.Write(payload)
	if err != nil {
		return n, fmt.Errorf("send datagram: %w", err)
	}
	if n != len(payload) {
		return n, &ShortWriteError{Expected: len(payload), Wrote: n}
	}

	s.logger.Debug("datagram sent", log.Int("bytes", n))
	return n, nil
}

// LocalAddr returns the address the socket is bound to.
func (s *UDPSender) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Close releases the socket. Safe to call more than once.
func (s *UDPSender) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
