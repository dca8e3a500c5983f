// Package transport runs the listen/accept loop on the Host side and the
// connect loop on the Peer side, handing an established net.Conn off to
// a session.Session (spec.md §4.2).
package transport

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrBindFailed is returned by Bind when the listening socket cannot be
// opened (spec.md §7).
var ErrBindFailed = errors.New("transport: bind failed")

// Status distinguishes a real client connection from the sacrificial
// connection used to unblock a pending Accept (spec.md §4.2).
type Status int

const (
	Accepted Status = iota
	Aborted
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "Accepted"
	case Aborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one Listener.Accept call.
type Result struct {
	Status Status
	Conn   net.Conn
}

// abortDialTimeout bounds how long Abort waits for its sacrificial dial
// to complete.
const abortDialTimeout = 2 * time.Second

// Listener owns the Host-side listening socket. It accepts exactly one
// real connection; accepting again after a successful Accept is the
// caller's decision, not this type's (the Host only ever hands one
// connection to a Session at a time).
type Listener struct {
	log     *zap.Logger
	ln      net.Listener
	addr    string
	aborted atomic.Bool
}

// Bind opens a listening TCP socket with address reuse enabled, so a
// restarted Host process can rebind the same port immediately instead of
// waiting out TIME_WAIT.
func Bind(log *zap.Logger, host string, port int) (*Listener, error) {
	ln, err := listenReuseAddr(host, port)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBindFailed, err)
	}

	return &Listener{
		log:  log,
		ln:   ln,
		addr: ln.Addr().String(),
	}, nil
}

// Addr returns the bound address, useful when port 0 was requested.
func (l *Listener) Addr() string {
	return l.addr
}

// Accept blocks until a connection arrives, then returns it unless it
// was the sacrificial connection opened by Abort, in which case it is
// closed immediately and Result.Status is Aborted.
func (l *Listener) Accept() (Result, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return Result{}, fmt.Errorf("transport: accept: %w", err)
	}

	if l.aborted.Load() {
		conn.Close()
		l.log.Info("listener aborted", zap.String("addr", l.addr))
		return Result{Status: Aborted}, nil
	}

	l.log.Info("connection accepted", zap.Stringer("remote", conn.RemoteAddr()))
	return Result{Status: Accepted, Conn: conn}, nil
}

// Abort unblocks a pending Accept by dialing the listener's own address
// (the "sacrificial loopback connection" technique of spec.md §4.2),
// since net.Listener.Accept has no other cancellation primitive.
func (l *Listener) Abort() {
	l.aborted.Store(true)

	conn, err := net.DialTimeout("tcp", l.addr, abortDialTimeout)
	if err != nil {
		l.log.Warn("abort dial failed; Accept may remain blocked", zap.Error(err))
		return
	}
	conn.Close()
}

// Close releases the listening socket.
func (l *Listener) Close() error {
	return l.ln.Close()
}
