package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// State is the listener lifecycle position.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateListening
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateListening:
		return "listening"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

const idleTimeout = 60 * time.Second

// State returns the current lifecycle state.
func (srv *HTTPServer) State() State {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.state
}

// Ready is closed once the current run is accepting connections.
func (srv *HTTPServer) Ready() <-chan struct{} {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.ready
}

// Addr is the bound address. Nil until Ready is closed.
func (srv *HTTPServer) Addr() net.Addr {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.addr
}

func (srv *HTTPServer) address() string {
	return net.JoinHostPort(srv.host, strconv.Itoa(srv.port))
}

func (srv *HTTPServer) setState(s State) {
	srv.mu.Lock()
	srv.state = s
	srv.mu.Unlock()
}

// Run binds the listener and serves until ctx is cancelled, then stops
// accepting connections and gives in-flight requests the shutdown grace
// period. A bind failure returns an error wrapping ErrBind and leaves the
// server stopped.
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.mu.Lock()
	if srv.state != StateStopped {
		srv.mu.Unlock()
		return ErrAlreadyRunning
	}
	srv.state = StateStarting
	srv.ready = make(chan struct{})
	srv.addr = nil
	ready := srv.ready
	srv.mu.Unlock()

	listener, err := net.Listen("tcp", srv.address())
	if err != nil {
		srv.setState(StateStopped)
		return fmt.Errorf("%w on %s: %v", ErrBind, srv.address(), err)
	}

	server := &http.Server{
		Handler:           srv.gin,
		ReadHeaderTimeout: srv.readTimeout,
		ReadTimeout:       srv.readTimeout,
		IdleTimeout:       idleTimeout,
	}

	srv.mu.Lock()
	srv.addr = listener.Addr()
	srv.state = StateListening
	srv.mu.Unlock()
	close(ready)

	srv.l.Infof(ctx, "httpserver.Run: listening on %s", listener.Addr())

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveDone:
		srv.setState(StateStopped)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpserver.Run: serve: %w", err)
		}
		return nil
	}

	srv.setState(StateStopping)
	srv.l.Infof(context.WithoutCancel(ctx), "httpserver.Run: shutting down, grace period %s", srv.shutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.shutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		// Grace period exceeded; abandon the remaining requests.
		server.Close()
	}
	<-serveDone
	srv.setState(StateStopped)
	srv.l.Infof(context.WithoutCancel(ctx), "httpserver.Run: stopped")

	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("httpserver.Run: shutdown: %w", err)
	}
	return nil
}
