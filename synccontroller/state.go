package synccontroller

// State is one node of the per-side state machine (spec.md §4.9).
type State int

const (
	StateDisconnected State = iota
	StateListening
	StateConnecting
	StateConnected
	// StateAwaitingPcb is reached only by the side that requests the
	// initial board (spec.md §4.9: "Peer only").
	StateAwaitingPcb
	StateHasModel
	StateInSyncCycle
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateListening:
		return "Listening"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateAwaitingPcb:
		return "AwaitingPcb"
	case StateHasModel:
		return "HasModel"
	case StateInSyncCycle:
		return "InSyncCycle"
	default:
		return "Unknown"
	}
}
