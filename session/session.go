// Package session runs the read loop on one established connection:
// decode header+payload, dispatch by message type, and give callers
// exclusive write access back onto the wire (spec.md §4.3).
package session

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/boardbridge/sync/protocol"
)

// ErrSessionClosed is returned by Run when the loop ends gracefully,
// either because a !DIS message was received/sent or because Cancel was
// called (spec.md §4.3, "SessionClosed").
var ErrSessionClosed = errors.New("session: closed")

// Handler reacts to each decoded message type. SyncController implements
// it; Session itself has no opinion about sync semantics.
type Handler interface {
	HandleReqPCB(s *Session) error
	HandleReqDIF(s *Session) error
	HandlePCB(s *Session, payload []byte) error
	HandleDIF(s *Session, payload []byte) error
	HandleReply(s *Session, diffJSON []byte, hash string) error
	// HandleVER reacts to the additive VER handshake (SPEC_FULL.md §4).
	// A Handler that does not care about version exchange can no-op.
	HandleVER(s *Session, payload []byte) error
}

// Session owns one connection end to end: the read loop, dispatch, and
// serialized writes.
type Session struct {
	conn      net.Conn
	codec     *protocol.Codec
	log       *zap.Logger
	out       outbox
	cancelled atomic.Bool
}

// New wraps an established connection. codec determines the header
// length both sides agreed on via configuration.
func New(conn net.Conn, codec *protocol.Codec, log *zap.Logger) *Session {
	return &Session{conn: conn, codec: codec, log: log}
}

// Send builds and writes one header+payload frame. Concurrent callers
// never interleave (spec.md §4.3, §5).
func (s *Session) Send(t protocol.Type, payload []byte) error {
	return s.out.locked(func() error {
		return s.codec.WriteMessage(s.conn, t, payload)
	})
}

// SendDisconnect sends the !DIS message that precedes a controlled
// shutdown (e.g. after a HashMismatch, spec.md §7).
func (s *Session) SendDisconnect() error {
	return s.Send(protocol.TypeDIS, nil)
}

// Cancel causes Run's loop to exit after the next decoded message
// (spec.md §4.3, "cancellation handle... exits after the next decoded
// message").
func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Run decodes and dispatches messages until the connection closes, a
// !DIS is received, Cancel is called, or a decode error occurs. A
// malformed header, unknown type, or JSON parse failure is
// ErrBadFrame and is fatal to the session (spec.md §7): Run closes the
// connection and returns the wrapped error. Graceful termination
// returns ErrSessionClosed.
func (s *Session) Run(h Handler) error {
	for {
		if s.cancelled.Load() {
			s.conn.Close()
			return ErrSessionClosed
		}

		msg, err := s.codec.ReadMessage(s.conn)
		if err != nil {
			s.conn.Close()
			s.log.Error("session: bad frame, closing", zap.Error(err))
			return err
		}

		if err := s.dispatch(h, msg); err != nil {
			if errors.Is(err, ErrSessionClosed) {
				s.conn.Close()
				return ErrSessionClosed
			}
			if errors.Is(err, protocol.ErrBadFrame) {
				s.conn.Close()
				s.log.Error("session: bad frame, closing", zap.Error(err))
				return err
			}
			s.log.Warn("session: handler error", zap.String("type", string(msg.Type)), zap.Error(err))
		}
	}
}

func (s *Session) dispatch(h Handler, msg protocol.Message) error {
	switch msg.Type {
	case protocol.TypeReqPCB:
		return h.HandleReqPCB(s)
	case protocol.TypeReqDIF:
		return h.HandleReqDIF(s)
	case protocol.TypePCB:
		return h.HandlePCB(s, msg.Payload)
	case protocol.TypeDIF:
		return h.HandleDIF(s, msg.Payload)
	case protocol.TypeREP:
		diffJSON, hash, err := protocol.SplitReply(msg.Payload)
		if err != nil {
			return err
		}
		return h.HandleReply(s, diffJSON, hash)
	case protocol.TypeVER:
		return h.HandleVER(s, msg.Payload)
	case protocol.TypeDIS:
		return ErrSessionClosed
	default:
		return fmt.Errorf("session: no dispatch for %q", msg.Type)
	}
}
