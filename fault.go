package backplane

// FaultKind classifies why a Device terminated. See [Fault].
type FaultKind uint8

const (
	// FaultDrop means the Device was destroyed without ever calling
	// Disconnect explicitly — it was never "scheduled" to complete.
	FaultDrop FaultKind = iota + 1
	// FaultError means the Device's user computation returned an error or
	// panicked.
	FaultError
	// FaultCascade means the Device terminated because a peer it was
	// monitoring itself faulted.
	FaultCascade
)

func (k FaultKind) String() string {
	switch k {
	case FaultDrop:
		return "drop"
	case FaultError:
		return "error"
	case FaultCascade:
		return "cascade"
	default:
		return "unknown"
	}
}

// Fault is a classified terminal condition, attached to a Disconnected
// Message when a Device terminates for a reason other than orderly
// completion.
type Fault struct {
	Kind FaultKind
	// Origin is populated only when Kind == FaultCascade: the DeviceID of
	// the peer whose fault caused this cascade.
	Origin DeviceID
}

// IsDrop reports whether the Device was destroyed without disconnecting.
func (f Fault) IsDrop() bool { return f.Kind == FaultDrop }

// IsError reports whether the user computation errored or panicked.
func (f Fault) IsError() bool { return f.Kind == FaultError }

// IsCascade reports whether this fault propagated from a monitored peer,
// and if so, that peer's DeviceID.
func (f Fault) IsCascade() (DeviceID, bool) {
	if f.Kind == FaultCascade {
		return f.Origin, true
	}
	return 0, false
}

func (f Fault) String() string {
	if f.Kind == FaultCascade {
		return "cascade(" + f.Origin.String() + ")"
	}
	return f.Kind.String()
}

// FaultOf constructs a Fault of the given kind, with no Origin. Use
// [CascadeFault] for a cascade, which needs one.
func FaultOf(kind FaultKind) Fault { return Fault{Kind: kind} }

// CascadeFault constructs a Fault reporting that origin's termination
// caused this one.
func CascadeFault(origin DeviceID) Fault {
	return Fault{Kind: FaultCascade, Origin: origin}
}
