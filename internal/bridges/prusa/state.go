package prusa

// State is the bridge lifecycle state.
type State int32

// Bridge states. Transitions only move forward:
// Connecting -> Polling -> Stopping.
const (
	StateConnecting State = iota
	StatePolling
	StateStopping
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StatePolling:
		return "polling"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}
