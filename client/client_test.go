package client

import (
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"livebridge/bridge"
	"livebridge/commands"
	"livebridge/live"
	"livebridge/router"
	"livebridge/server"
)

// freeAddr reserves a loopback port so a server can be stopped and
// restarted on the same address within a test.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func startDaemon(t *testing.T, addr string) *server.Server {
	t.Helper()
	song := live.NewSong()
	looper := live.NewLooper()
	t.Cleanup(looper.Close)

	table := router.NewTable()
	commands.Register(table, song)
	r := router.New(table, bridge.New(looper, time.Second, nil))

	srv := server.New(r, server.Options{Addr: addr})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(srv.Stop)
	return srv
}

func newTestClient(t *testing.T, addr string) *Client {
	t.Helper()
	c := New(Options{
		Addr:         addr,
		ConnectPause: 10 * time.Millisecond,
		MutateDelay:  1 * time.Millisecond,
	})
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSendCommandRoundTrip(t *testing.T) {
	srv := startDaemon(t, "127.0.0.1:0")
	c := newTestClient(t, srv.Addr())

	result, err := c.SendCommand("health_check", nil)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := result.(map[string]any)
	if !ok || m["status"] != "ok" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestMutatingCommand(t *testing.T) {
	srv := startDaemon(t, "127.0.0.1:0")
	c := newTestClient(t, srv.Addr())

	if _, err := c.SendCommand("create_midi_track", nil); err != nil {
		t.Fatal(err)
	}
	result, err := c.SendCommand("set_track_volume", map[string]any{
		"track_index": 0, "volume": 0.3,
	})
	if err != nil {
		t.Fatal(err)
	}
	m := result.(map[string]any)
	if m["volume"] != 0.3 {
		t.Fatalf("volume = %v", m["volume"])
	}
}

func TestServerErrorSurfacesAsError(t *testing.T) {
	srv := startDaemon(t, "127.0.0.1:0")
	c := newTestClient(t, srv.Addr())

	_, err := c.SendCommand("no_such_command", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("unexpected error: %v", err)
	}

	// An error response is not a transport failure: the connection
	// stays usable.
	if !c.Connected() {
		t.Fatal("connection dropped after error response")
	}
	if _, err := c.SendCommand("health_check", nil); err != nil {
		t.Fatal(err)
	}
}

func TestConnectIdempotent(t *testing.T) {
	srv := startDaemon(t, "127.0.0.1:0")
	c := newTestClient(t, srv.Addr())

	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	if !c.Connected() {
		t.Fatal("should be connected")
	}
}

func TestConnectFailureAfterRetries(t *testing.T) {
	c := New(Options{
		Addr:            "127.0.0.1:1", // nothing listens here
		ConnectAttempts: 2,
		ConnectPause:    5 * time.Millisecond,
		DialTimeout:     100 * time.Millisecond,
	})
	err := c.Connect()
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

// A non-UTF-8 chunk in the response stream is dropped without failing
// the exchange or closing the connection; the clean bytes that follow
// still complete the response.
func TestExchangeSurvivesInvalidChunk(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })

	// Raw responder: for every read, send garbage bytes first, then a
	// complete response document.
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
			conn.Write([]byte{0xff, 0xfe, 0xfd})
			time.Sleep(50 * time.Millisecond)
			conn.Write([]byte(`{"status": "success", "result": {"status": "ok"}}`))
		}
	}()

	c := newTestClient(t, l.Addr().String())
	result, err := c.SendCommand("health_check", nil)
	if err != nil {
		t.Fatalf("exchange should survive a bad chunk: %v", err)
	}
	if result.(map[string]any)["status"] != "ok" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if !c.Connected() {
		t.Fatal("connection dropped after recoverable chunk")
	}
}

func TestReconnectAfterServerRestart(t *testing.T) {
	addr := freeAddr(t)
	srv := startDaemon(t, addr)
	c := newTestClient(t, addr)

	if _, err := c.SendCommand("health_check", nil); err != nil {
		t.Fatal(err)
	}

	srv.Stop()

	// The exchange on the dead socket fails and invalidates the handle.
	if _, err := c.SendCommand("health_check", nil); err == nil {
		t.Fatal("expected failure against stopped server")
	}
	if c.Connected() {
		t.Fatal("stale handle should have been dropped")
	}

	startDaemon(t, addr)
	if _, err := c.SendCommand("health_check", nil); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
}
