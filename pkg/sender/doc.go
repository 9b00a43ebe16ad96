// Package sender provides UDP datagram transmission with exact-count
// verification.
//
// A UDPSender owns one socket, bound to a local address and connected to a
// fixed destination at open time. Each Send transmits a single datagram and
// checks that the socket reported exactly the payload length; any other
// count is a ShortWriteError.
//
// # Usage
//
// Open a sender and transmit:
//
//	s, err := sender.Open("127.0.0.1:9999", "127.0.0.1:9999", logger)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if _, err := s.Send(ctx, []byte("test")); err != nil {
//	    return err
//	}
//
// # Errors
//
// Open returns *BindError when the local address cannot be bound (port in
// use, invalid or unavailable address) and *ConnectError when the connect
// phase fails. Both wrap their cause and match with errors.As.
package sender
