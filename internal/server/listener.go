// Package server accepts robot connections and runs one independent
// session per client.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/robot-guidance/server/internal/events"
	"github.com/robot-guidance/server/internal/session"
)

// Listener binds the guidance port and spawns sessions. The accept loop
// is the only shared resource between clients; sessions themselves share
// nothing.
type Listener struct {
	addr       string
	idle       time.Duration
	sessionCfg session.Config
	sink       events.Sink
	logger     *zap.Logger

	mu    sync.Mutex
	bound net.Addr
}

// NewListener creates a listener. idle is the accept-idle deadline: when
// it passes without a new connection the listener shuts down cleanly.
func NewListener(addr string, idle time.Duration, sessionCfg session.Config, sink events.Sink, logger *zap.Logger) *Listener {
	if sink == nil {
		sink = events.Nop()
	}
	return &Listener{
		addr:       addr,
		idle:       idle,
		sessionCfg: sessionCfg,
		sink:       sink,
		logger:     logger,
	}
}

// Serve blocks until the accept-idle deadline expires or ctx is
// cancelled, then drains the remaining sessions. It returns an error
// only when binding or accepting fails for a reason other than the idle
// deadline.
func (l *Listener) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", l.addr, err)
	}
	tcpLn := ln.(*net.TCPListener)

	l.mu.Lock()
	l.bound = ln.Addr()
	l.mu.Unlock()
	l.logger.Info("Listening for robots",
		zap.String("addr", ln.Addr().String()),
		zap.Duration("accept_idle", l.idle),
	)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	var serveErr error
	for {
		if err := tcpLn.SetDeadline(time.Now().Add(l.idle)); err != nil {
			serveErr = fmt.Errorf("arm accept deadline: %w", err)
			break
		}
		conn, err := tcpLn.Accept()
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Listener cancelled")
				break
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				l.logger.Info("No new connections, shutting down")
				break
			}
			serveErr = fmt.Errorf("accept: %w", err)
			break
		}

		sess := session.New(conn, l.sessionCfg, l.sink, l.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.Run(ctx)
		}()
	}

	ln.Close()
	wg.Wait()
	return serveErr
}

// Addr returns the bound address once Serve is listening, nil before.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bound
}
