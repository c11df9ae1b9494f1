package scanner

import "fmt"

// Phase identifies where a scan is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseConnecting
	PhaseSniffing
	PhaseResolving
	PhaseProbing
	PhaseCompleted
	PhaseCancelled
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConnecting:
		return "connecting"
	case PhaseSniffing:
		return "sniffing"
	case PhaseResolving:
		return "resolving"
	case PhaseProbing:
		return "probing"
	case PhaseCompleted:
		return "completed"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Status is one progress notification for the consumer. Progress is a
// 0-100 percentage of the whole scan; HasProgress is false for messages
// that do not move the bar.
type Status struct {
	Phase       Phase
	Message     string
	Progress    float64
	HasProgress bool
}
