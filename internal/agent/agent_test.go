package agent

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bft-labs/udpsend/pkg/log"
	"github.com/bft-labs/udpsend/pkg/sender"
)

// captureLogger records log entries for assertions.
type captureLogger struct {
	entries []capturedEntry
}

type capturedEntry struct {
	msg    string
	fields map[string]interface{}
}

func (c *captureLogger) record(msg string, fields []log.Field) {
	e := capturedEntry{msg: msg, fields: map[string]interface{}{}}
	for _, f := range fields {
		e.fields[f.Key] = f.Value
	}
	c.entries = append(c.entries, e)
}

func (c *captureLogger) Debug(msg string, fields ...log.Field) { c.record(msg, fields) }
func (c *captureLogger) Info(msg string, fields ...log.Field)  { c.record(msg, fields) }
func (c *captureLogger) Warn(msg string, fields ...log.Field)  { c.record(msg, fields) }
func (c *captureLogger) Error(msg string, fields ...log.Field) { c.record(msg, fields) }

func (c *captureLogger) find(msg string) (capturedEntry, bool) {
	for _, e := range c.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return capturedEntry{}, false
}

func newListener(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readDatagram(t *testing.T, conn *net.UDPConn) []byte {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	buf := make([]byte, 1500)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read datagram: %v", err)
	}
	return buf[:n]
}

func TestRunSendsPayloadSequence(t *testing.T) {
	recv := newListener(t)

	cfg := DefaultConfig()
	cfg.BindAddr = "127.0.0.1:0"
	cfg.ConnectAddr = recv.LocalAddr().String()

	if err := Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Two datagrams, in order, with the exact fixture bytes.
	want := [][]byte{
		{0x74, 0x65, 0x73, 0x74},
		{0x74, 0x65, 0x73, 0x74, 0x74, 0x65, 0x73, 0x74},
	}
	for i, w := range want {
		got := readDatagram(t, recv)
		if !bytes.Equal(got, w) {
			t.Errorf("datagram %d = % x, want % x", i+1, got, w)
		}
	}
}

func TestRunLogsBoundAddress(t *testing.T) {
	recv := newListener(t)

	cfg := DefaultConfig()
	cfg.BindAddr = "127.0.0.1:0"
	cfg.ConnectAddr = recv.LocalAddr().String()

	logger := &captureLogger{}
	if err := Run(context.Background(), cfg, logger); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entry, ok := logger.find("socket bound and connected")
	if !ok {
		t.Fatal("no \"socket bound and connected\" log entry")
	}
	local, ok := entry.fields["local"].(string)
	if !ok {
		t.Fatalf("local field = %v, want a string", entry.fields["local"])
	}
	// An ephemeral port was requested, so the logged address must carry
	// the port the kernel actually assigned.
	_, port, err := net.SplitHostPort(local)
	if err != nil {
		t.Fatalf("local field %q is not host:port: %v", local, err)
	}
	if port == "0" {
		t.Errorf("local field %q still has port 0, want the bound port", local)
	}
	if got := entry.fields["connect"]; got != cfg.ConnectAddr {
		t.Errorf("connect field = %v, want %v", got, cfg.ConnectAddr)
	}
}

func TestRunCustomPayloads(t *testing.T) {
	recv := newListener(t)

	cfg := Config{
		BindAddr:    "127.0.0.1:0",
		ConnectAddr: recv.LocalAddr().String(),
		Payloads:    []string{"ping", "pong", "done"},
		Timeout:     2 * time.Second,
	}

	if err := Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, w := range cfg.Payloads {
		if got := readDatagram(t, recv); string(got) != w {
			t.Errorf("datagram %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestRunBindInUse(t *testing.T) {
	occupant := newListener(t)

	cfg := DefaultConfig()
	cfg.BindAddr = occupant.LocalAddr().String()
	cfg.ConnectAddr = ""

	err := Run(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("Run() succeeded with the port occupied")
	}
	var be *sender.BindError
	if !errors.As(err, &be) {
		t.Fatalf("Run() error = %v, want *sender.BindError", err)
	}

	// Fail-fast at bind time: zero datagrams observed.
	if err := occupant.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	buf := make([]byte, 64)
	if n, _, err := occupant.ReadFromUDP(buf); err == nil {
		t.Errorf("observed %d-byte datagram after failed bind", n)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := Config{BindAddr: "127.0.0.1:0"}

	err := Run(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("Run() succeeded with no payloads")
	}
}

func TestRunContextCanceled(t *testing.T) {
	recv := newListener(t)

	cfg := DefaultConfig()
	cfg.BindAddr = "127.0.0.1:0"
	cfg.ConnectAddr = recv.LocalAddr().String()
	cfg.Timeout = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, cfg, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
