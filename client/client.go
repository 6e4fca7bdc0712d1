// Package client implements the control-surface side of the bridge: a
// reconnecting TCP client that sends one command at a time and waits for
// its response.
//
// The client is deliberately not multiplexed. The daemon answers in
// order on each connection, commands from a control surface are
// strictly sequential, and a failed exchange must invalidate the
// connection handle so the next call redials from scratch. A fresh
// connection is only trusted after a validation round trip succeeds.
package client

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"livebridge/commands"
	"livebridge/discovery"
	"livebridge/protocol"
)

// Connection and exchange defaults.
const (
	DefaultConnectAttempts = 3
	DefaultConnectPause    = 1 * time.Second
	DefaultDialTimeout     = 5 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultMutateTimeout   = 15 * time.Second
	DefaultMutateDelay     = 100 * time.Millisecond
)

// ErrNotConnected is returned when an exchange is attempted with no
// usable connection and reconnecting failed.
var ErrNotConnected = errors.New("not connected")

// Options configures a Client. Zero values fall back to the defaults
// above.
type Options struct {
	Addr string // daemon address, e.g. "localhost:9877"

	// Registry, when set, resolves the daemon address at connect time
	// instead of using Addr.
	Registry discovery.Registry

	ConnectAttempts int
	ConnectPause    time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration // response deadline for read-only commands
	MutateTimeout   time.Duration // response deadline for mutating commands

	// MutateDelay is the settle pause applied before sending and after
	// receiving a mutating command, giving the host time to apply the
	// change before the next exchange.
	MutateDelay time.Duration

	MaxBuffer int
	Logger    *zap.Logger
}

// Client holds at most one live connection and serializes exchanges
// over it. Safe for concurrent use; callers queue on the mutex.
type Client struct {
	opts   Options
	picker discovery.Picker
	log    *zap.Logger

	mu   sync.Mutex
	conn net.Conn
}

// New creates a Client. It does not dial; the first exchange (or an
// explicit Connect) establishes the connection.
func New(opts Options) *Client {
	if opts.ConnectAttempts <= 0 {
		opts.ConnectAttempts = DefaultConnectAttempts
	}
	if opts.ConnectPause <= 0 {
		opts.ConnectPause = DefaultConnectPause
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = DefaultDialTimeout
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.MutateTimeout <= 0 {
		opts.MutateTimeout = DefaultMutateTimeout
	}
	if opts.MutateDelay < 0 {
		opts.MutateDelay = DefaultMutateDelay
	}
	if opts.MaxBuffer <= 0 {
		opts.MaxBuffer = protocol.DefaultMaxBuffer
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{opts: opts, log: opts.Logger}
}

// Connect establishes and validates a connection. Calling it while
// already connected is a no-op.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureConn()
}

// Connected reports whether the client currently holds a connection
// handle. The handle may still be stale; the next exchange finds out.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Close drops the connection. The client remains usable; the next
// SendCommand reconnects.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropConn()
}

// SendCommand sends one command and waits for its response. Mutating
// commands get the settle delay before sending and after receiving, and
// the longer response deadline. A server-side error response comes back
// as an error; any transport failure invalidates the connection so the
// next call redials.
func (c *Client) SendCommand(name string, params map[string]any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConn(); err != nil {
		return nil, err
	}

	mutating := commands.IsMutating(name)
	if mutating {
		time.Sleep(c.opts.MutateDelay)
	}

	resp, err := c.exchange(c.conn, &protocol.Command{Type: name, Params: params}, c.responseTimeout(mutating))
	if err != nil {
		c.dropConn()
		return nil, err
	}

	if mutating {
		time.Sleep(c.opts.MutateDelay)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("command %s failed: %s", name, resp.Message)
	}
	return resp.Result, nil
}

func (c *Client) responseTimeout(mutating bool) time.Duration {
	if mutating {
		return c.opts.MutateTimeout
	}
	return c.opts.ReadTimeout
}

// ensureConn makes sure c.conn holds a validated connection, dialing up
// to ConnectAttempts times with a pause between attempts. Callers hold
// c.mu.
func (c *Client) ensureConn() error {
	if c.conn != nil {
		return nil
	}

	addr, err := c.resolveAddr()
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= c.opts.ConnectAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(c.opts.ConnectPause)
		}

		conn, err := net.DialTimeout("tcp", addr, c.opts.DialTimeout)
		if err != nil {
			lastErr = err
			c.log.Debug("dial failed",
				zap.String("addr", addr), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		// A socket that dials is not yet trusted: prove the daemon is
		// actually answering before handing the connection out.
		if err := c.validate(conn); err != nil {
			conn.Close()
			lastErr = err
			c.log.Debug("validation failed",
				zap.String("addr", addr), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		c.log.Info("connected", zap.String("addr", addr), zap.Int("attempt", attempt))
		c.conn = conn
		return nil
	}
	return fmt.Errorf("%w: %s after %d attempts: %v",
		ErrNotConnected, addr, c.opts.ConnectAttempts, lastErr)
}

func (c *Client) resolveAddr() (string, error) {
	if c.opts.Registry == nil {
		return c.opts.Addr, nil
	}
	return discovery.Resolve(c.opts.Registry, &c.picker)
}

// validate runs a read-only round trip on a fresh connection.
func (c *Client) validate(conn net.Conn) error {
	resp, err := c.exchange(conn, &protocol.Command{Type: "get_session_info"}, c.opts.ReadTimeout)
	if err != nil {
		return fmt.Errorf("validation round trip: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("validation round trip: %s", resp.Message)
	}
	return nil
}

// exchange writes one command and accumulates the reply until a full
// document parses or the deadline passes.
func (c *Client) exchange(conn net.Conn, cmd *protocol.Command, timeout time.Duration) (*protocol.Response, error) {
	if err := protocol.Write(conn, cmd); err != nil {
		return nil, fmt.Errorf("send %s: %w", cmd.Type, err)
	}

	acc := protocol.NewAccumulator(c.opts.MaxBuffer)
	buf := make([]byte, 8192)
	deadline := time.Now().Add(timeout)
	for {
		conn.SetReadDeadline(deadline)
		n, err := conn.Read(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() && acc.Len() > 0 {
				return nil, fmt.Errorf("%s: %w (%d bytes buffered)",
					cmd.Type, protocol.ErrIncompleteMessage, acc.Len())
			}
			return nil, fmt.Errorf("receive %s: %w", cmd.Type, err)
		}
		if err := acc.Feed(buf[:n]); err != nil {
			if errors.Is(err, protocol.ErrInvalidUTF8) {
				// Malformed chunk: drop it and keep reading, a clean
				// continuation may arrive next.
				continue
			}
			return nil, fmt.Errorf("receive %s: %w", cmd.Type, err)
		}
		var resp protocol.Response
		if acc.TryParse(&resp) {
			return &resp, nil
		}
	}
}

// dropConn closes and forgets the current connection. Callers hold
// c.mu.
func (c *Client) dropConn() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
