package protocol

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultHeaderLen is H in spec.md §4.1.
const DefaultHeaderLen = 64

// replySeparator joins a REP message's diff JSON and hex hash (spec.md
// §4.1). It is the one payload that is not bare JSON.
const replySeparator = "__"

// ErrBadFrame is returned for a malformed header, an unknown message
// type, or (for payloads other than REP and !DIS) a JSON parse failure. It is fatal to
// the session that received it (spec.md §7).
var ErrBadFrame = errors.New("protocol: bad frame")

// Message is a fully decoded wire message: a type and its raw payload
// bytes. REP payloads are not further split here; see SplitReply.
type Message struct {
	Type    Type
	Payload []byte
}

// Codec frames messages on an io.Reader/io.Writer pair. HeaderLen
// defaults to DefaultHeaderLen when zero.
type Codec struct {
	HeaderLen int
}

// NewCodec returns a Codec using the configured header length, or
// DefaultHeaderLen if headerLen is 0.
func NewCodec(headerLen int) *Codec {
	if headerLen == 0 {
		headerLen = DefaultHeaderLen
	}
	return &Codec{HeaderLen: headerLen}
}

// EncodeHeader renders "<TYPE>_<LEN>" space-padded to HeaderLen bytes.
func (c *Codec) EncodeHeader(t Type, payloadLen int) ([]byte, error) {
	header := fmt.Sprintf("%s_%d", t, payloadLen)
	if len(header) > c.HeaderLen {
		return nil, fmt.Errorf("%w: header %q exceeds header length %d", ErrBadFrame, header, c.HeaderLen)
	}
	out := make([]byte, c.HeaderLen)
	for i := range out {
		out[i] = ' '
	}
	copy(out, header)
	return out, nil
}

// DecodeHeader parses a HeaderLen-byte header record into a type and
// payload length.
func (c *Codec) DecodeHeader(header []byte) (Type, int, error) {
	if len(header) != c.HeaderLen {
		return "", 0, fmt.Errorf("%w: header is %d bytes, want %d", ErrBadFrame, len(header), c.HeaderLen)
	}

	trimmed := strings.TrimRight(string(header), " ")
	idx := strings.LastIndex(trimmed, "_")
	if idx < 0 {
		return "", 0, fmt.Errorf("%w: header %q has no type/length separator", ErrBadFrame, trimmed)
	}

	typ := Type(trimmed[:idx])
	if !ValidTypes[typ] {
		return "", 0, fmt.Errorf("%w: unknown message type %q", ErrBadFrame, typ)
	}

	length, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil || length < 0 {
		return "", 0, fmt.Errorf("%w: invalid payload length in header %q", ErrBadFrame, trimmed)
	}

	return typ, length, nil
}

// WriteMessage frames and writes one message in a single Write call, so
// that the header and payload never interleave with a concurrent writer
// sharing the same connection (spec.md §4.3/§5; Session additionally
// serializes callers with its own lock — see session.outbox).
func (c *Codec) WriteMessage(w io.Writer, t Type, payload []byte) error {
	header, err := c.EncodeHeader(t, len(payload))
	if err != nil {
		return err
	}

	frame := make([]byte, 0, len(header)+len(payload))
	frame = append(frame, header...)
	frame = append(frame, payload...)

	_, err = w.Write(frame)
	return err
}

// ReadMessage reads exactly one header record then exactly len(payload)
// bytes from r. Payloads other than REP and !DIS are validated as
// well-formed JSON here,
// so a JSON parse failure is caught at the framing layer as spec.md §4.1
// requires, even though the typed decode happens further up the stack.
func (c *Codec) ReadMessage(r io.Reader) (Message, error) {
	header := make([]byte, c.HeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return Message{}, fmt.Errorf("%w: reading header: %v", ErrBadFrame, err)
	}

	typ, length, err := c.DecodeHeader(header)
	if err != nil {
		return Message{}, err
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Message{}, fmt.Errorf("%w: reading payload: %v", ErrBadFrame, err)
		}
	}

	if typ != TypeREP && typ != TypeDIS && len(payload) > 0 {
		if !jsonAPI.Valid(payload) {
			return Message{}, fmt.Errorf("%w: payload for %s is not valid JSON", ErrBadFrame, typ)
		}
	}

	return Message{Type: typ, Payload: payload}, nil
}

// EncodeReply builds a REP payload: "<json-diff>__<hex-hash>".
func EncodeReply(diffJSON []byte, hash string) []byte {
	out := make([]byte, 0, len(diffJSON)+len(replySeparator)+len(hash))
	out = append(out, diffJSON...)
	out = append(out, replySeparator...)
	out = append(out, hash...)
	return out
}

// SplitReply splits a REP payload at the literal "__" separator into its
// diff JSON and hex hash parts.
func SplitReply(payload []byte) (diffJSON []byte, hash string, err error) {
	idx := strings.LastIndex(string(payload), replySeparator)
	if idx < 0 {
		return nil, "", fmt.Errorf("%w: REP payload missing %q separator", ErrBadFrame, replySeparator)
	}
	diffJSON = payload[:idx]
	hash = string(payload[idx+len(replySeparator):])
	if !jsonAPI.Valid(diffJSON) {
		return nil, "", fmt.Errorf("%w: REP diff segment is not valid JSON", ErrBadFrame)
	}
	return diffJSON, hash, nil
}
