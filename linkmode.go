package backplane

// LinkMode selects the direction(s) of a link between two Devices.
type LinkMode uint8

const (
	// Monitor subscribes the caller to the other Device's termination: the
	// caller will receive a Disconnected Message when the other Device
	// terminates.
	Monitor LinkMode = 1 << iota
	// Notify subscribes the other Device to the caller's termination: the
	// other Device will receive a Disconnected Message when the caller
	// terminates.
	Notify
	// Peer is both Monitor and Notify — each Device is notified of the
	// other's termination.
	Peer = Monitor | Notify
)

func (m LinkMode) monitor() bool { return m&Monitor != 0 }
func (m LinkMode) notify() bool  { return m&Notify != 0 }

func (m LinkMode) String() string {
	switch m {
	case Monitor:
		return "monitor"
	case Notify:
		return "notify"
	case Peer:
		return "peer"
	default:
		return "none"
	}
}
