package transport

import (
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// ErrConnectExhausted is returned when every port in the configured
// search range has been tried without success (spec.md §7).
var ErrConnectExhausted = errors.New("transport: connect exhausted port range")

// ErrConnectAborted is returned when Abort is called while a Connector
// is between dial attempts.
var ErrConnectAborted = errors.New("transport: connect aborted")

const dialTimeout = 3 * time.Second

// Connector owns the Peer-side connect loop: dial host:basePort, and on
// failure retry at incrementing ports up to maxPortSearchRange above the
// base (spec.md §4.2).
type Connector struct {
	log     *zap.Logger
	host    string
	abortCh chan struct{}
}

// NewConnector returns a Connector that logs attempts to log.
func NewConnector(log *zap.Logger, host string) *Connector {
	return &Connector{log: log, host: host, abortCh: make(chan struct{})}
}

// Abort causes any in-progress or future Connect call on this Connector
// to return ErrConnectAborted at its next port-search iteration.
func (c *Connector) Abort() {
	select {
	case <-c.abortCh:
		// already aborted
	default:
		close(c.abortCh)
	}
}

// Connect tries basePort, basePort+1, ..., basePort+maxPortSearchRange in
// order, returning the first successful connection and the port it
// connected on.
func (c *Connector) Connect(basePort, maxPortSearchRange int) (net.Conn, int, error) {
	for offset := 0; offset <= maxPortSearchRange; offset++ {
		select {
		case <-c.abortCh:
			return nil, 0, ErrConnectAborted
		default:
		}

		port := basePort + offset
		addr := fmt.Sprintf("%s:%d", c.host, port)
		conn, err := net.DialTimeout("tcp", addr, dialTimeout)
		if err == nil {
			c.log.Info("connected", zap.String("addr", addr))
			return conn, port, nil
		}

		c.log.Debug("connect attempt failed", zap.String("addr", addr), zap.Error(err))
	}

	return nil, 0, fmt.Errorf("%w: tried ports %d-%d", ErrConnectExhausted, basePort, basePort+maxPortSearchRange)
}
