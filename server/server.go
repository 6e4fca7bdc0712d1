// Package server implements the TCP front end of the bridge: a
// concurrent accept loop with one worker goroutine per connection,
// embedded in a host that stays single-threaded for mutations.
//
// Request processing pipeline:
//
//	Accept conn → register in connection table → worker goroutine
//	  → accumulate bytes until one complete JSON document parses
//	  → Router.Dispatch (middleware chain → immediate or bridge)
//	  → write the JSON response back on the same connection
//
// A worker failing — bad payload, write error, handler panic — only ever
// takes down its own connection. The accept loop and the other workers
// keep going.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"livebridge/protocol"
	"livebridge/router"
)

// Defaults mirror the daemon's stock configuration.
const (
	DefaultMaxClients    = 10
	DefaultClientTimeout = 300 * time.Second

	// acceptPollInterval bounds how long the accept loop can go without
	// noticing a stop request.
	acceptPollInterval = 1 * time.Second

	// capacityPollInterval paces the accept loop while the connection
	// table is full.
	capacityPollInterval = 100 * time.Millisecond

	// stopGrace is how long Stop waits for workers to drain before
	// giving up on them.
	stopGrace = 1 * time.Second
)

// Server lifecycle states.
const (
	stateStopped int32 = iota
	stateStarting
	stateListening
	stateStopping
)

// Options configures a Server. Zero values fall back to the defaults
// above.
type Options struct {
	Addr          string        // listen address, e.g. "localhost:9877"
	MaxClients    int           // concurrent connection ceiling
	ClientTimeout time.Duration // per-connection read deadline
	MaxBuffer     int           // receive buffer cap per connection
	Logger        *zap.Logger
}

// Server owns the listener, the connection table, and the worker
// goroutines. All mutating commands reaching it are already classified
// by the router; the server itself never touches the model.
type Server struct {
	addr          string
	maxClients    int
	clientTimeout time.Duration
	maxBuffer     int

	router *router.Router
	log    *zap.Logger

	state    atomic.Int32
	stopping atomic.Bool

	mu       sync.Mutex
	listener *net.TCPListener
	conns    *connTable
	wg       sync.WaitGroup
}

// New creates a Server around a populated router.
func New(r *router.Router, opts Options) *Server {
	if opts.MaxClients <= 0 {
		opts.MaxClients = DefaultMaxClients
	}
	if opts.ClientTimeout <= 0 {
		opts.ClientTimeout = DefaultClientTimeout
	}
	if opts.MaxBuffer <= 0 {
		opts.MaxBuffer = protocol.DefaultMaxBuffer
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		addr:          opts.Addr,
		maxClients:    opts.MaxClients,
		clientTimeout: opts.ClientTimeout,
		maxBuffer:     opts.MaxBuffer,
		router:        r,
		log:           opts.Logger,
		conns:         newConnTable(),
	}
}

// Start binds the listener and launches the accept loop. It returns an
// error if the server is already running or the address is taken; a
// clean start returns once the socket is listening, not when it stops.
func (s *Server) Start() error {
	if !s.state.CompareAndSwap(stateStopped, stateStarting) {
		return errors.New("server already running")
	}

	addr, err := net.ResolveTCPAddr("tcp", s.addr)
	if err != nil {
		s.state.Store(stateStopped)
		return fmt.Errorf("resolve %s: %w", s.addr, err)
	}
	listener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		s.state.Store(stateStopped)
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	s.stopping.Store(false)
	s.state.Store(stateListening)

	s.log.Info("server listening",
		zap.String("addr", listener.Addr().String()),
		zap.Int("max_clients", s.maxClients))

	s.wg.Add(1)
	go s.acceptLoop(listener)
	return nil
}

// Addr returns the bound listen address, useful when the configured
// port was 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Running reports whether the accept loop is live.
func (s *Server) Running() bool {
	return s.state.Load() == stateListening
}

// ConnCount returns the number of live client connections.
func (s *Server) ConnCount() int {
	return s.conns.count()
}

// acceptLoop accepts connections until stopped. The listener deadline is
// reset each pass so a stop request is noticed within one poll interval
// even when no client ever connects. At the connection ceiling the loop
// stops accepting and re-checks until a worker frees a slot —
// backpressure, not rejection — so a pending dial waits in the listen
// backlog and is served once capacity returns.
func (s *Server) acceptLoop(listener *net.TCPListener) {
	defer s.wg.Done()

	for {
		if s.stopping.Load() {
			return
		}
		if s.conns.count() >= s.maxClients {
			time.Sleep(capacityPollInterval)
			continue
		}
		listener.SetDeadline(time.Now().Add(acceptPollInterval))
		conn, err := listener.AcceptTCP()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			if s.stopping.Load() {
				return
			}
			s.log.Warn("accept failed", zap.Error(err))
			continue
		}

		s.conns.add(conn)
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// serveConn is the per-connection worker: it accumulates bytes until a
// complete command parses, dispatches it, and writes the response. Any
// failure ends only this connection.
func (s *Server) serveConn(conn *net.TCPConn) {
	remote := conn.RemoteAddr().String()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("connection worker panic",
				zap.String("remote", remote), zap.Any("panic", r))
		}
		s.conns.remove(conn)
		conn.Close()
		s.wg.Done()
	}()

	s.log.Debug("client connected", zap.String("remote", remote))

	acc := protocol.NewAccumulator(s.maxBuffer)
	buf := make([]byte, 8192)
	for {
		if s.stopping.Load() {
			return
		}
		conn.SetReadDeadline(time.Now().Add(s.clientTimeout))
		n, err := conn.Read(buf)
		if err != nil {
			if err != io.EOF {
				s.log.Debug("read ended", zap.String("remote", remote), zap.Error(err))
			}
			return
		}
		if n == 0 {
			return
		}

		if err := acc.Feed(buf[:n]); err != nil {
			switch {
			case errors.Is(err, protocol.ErrInvalidUTF8):
				// Drop the chunk, keep the connection: the client may
				// recover by sending a clean document next.
				s.log.Warn("dropping non-UTF-8 chunk", zap.String("remote", remote))
				continue
			case errors.Is(err, protocol.ErrBufferOverflow):
				// Fatal for this connection: log and close without a
				// response.
				s.log.Warn("receive buffer overflow, closing connection",
					zap.String("remote", remote), zap.Int("max_buffer", s.maxBuffer))
				return
			default:
				return
			}
		}

		var cmd protocol.Command
		for acc.TryParse(&cmd) {
			resp := s.router.Dispatch(context.Background(), &cmd)
			if err := protocol.Write(conn, resp); err != nil {
				s.log.Debug("write failed", zap.String("remote", remote), zap.Error(err))
				return
			}
			cmd = protocol.Command{}
		}
	}
}

// Stop shuts the server down: no new connections, listener closed, a
// bounded wait for workers, then forced closes for whatever remains.
// Idempotent; stopping a stopped server is a no-op.
func (s *Server) Stop() {
	if !s.state.CompareAndSwap(stateListening, stateStopping) {
		return
	}
	s.stopping.Store(true)

	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Unlock()

	// Unblock workers sitting in Read so they observe the stop flag.
	s.conns.closeAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopGrace):
		s.log.Warn("timed out waiting for connection workers")
	}

	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()
	s.state.Store(stateStopped)
	s.log.Info("server stopped")
}

// connTable tracks live connections under a mutex. The ceiling itself
// is enforced by the accept loop, which is the only adder: it checks the
// count before accepting and holds off while the table is full.
type connTable struct {
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func newConnTable() *connTable {
	return &connTable{conns: make(map[net.Conn]struct{})}
}

func (t *connTable) add(c net.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conns[c] = struct{}{}
}

func (t *connTable) remove(c net.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.conns, c)
}

func (t *connTable) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

func (t *connTable) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for c := range t.conns {
		c.Close()
	}
}
