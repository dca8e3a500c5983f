// Package protocol implements the wire framing of the ECAD/MCAD sync
// bridge: a fixed-length ASCII header record followed by a JSON payload
// record (spec.md §4.1). It is the only package that knows about bytes
// on the socket; everything above it works with decoded Message values.
package protocol

// Type is the sum type for the wire message kinds: spec.md's six core
// types plus the additive VER (declared below). Session dispatch
// switches on this Go type-safe enum, never on a raw string (spec.md §9).
type Type string

const (
	TypePCB    Type = "PCB"
	TypeDIF    Type = "DIF"
	TypeREP    Type = "REP"
	TypeReqPCB Type = "REQPCB"
	TypeReqDIF Type = "REQDIF"
	TypeDIS    Type = "!DIS"
)

// ValidTypes enumerates every message type the Codec will frame. Adding a
// message type (e.g. the VER handshake of SPEC_FULL.md §4) means adding
// it here.
var ValidTypes = map[Type]bool{
	TypePCB:    true,
	TypeDIF:    true,
	TypeREP:    true,
	TypeReqPCB: true,
	TypeReqDIF: true,
	TypeDIS:    true,
	TypeVER:    true,
}

// TypeVER is an additive handshake message (SPEC_FULL.md §4,
// "Version/capability exchange") carrying a tool version string ahead of
// the first REQPCB. It is not one of spec.md's six enumerated core
// types; Session treats it as optional and non-fatal.
const TypeVER Type = "VER"
