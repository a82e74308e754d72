package backplane

// messageKind discriminates the (fixed, closed) Message vocabulary.
type messageKind uint8

const (
	msgDisconnected messageKind = iota + 1
	msgShutdown
)

// Message is the narrow vocabulary exchanged over Lines: a peer announcing
// its own termination (Disconnected), or a request that the receiver wind
// down (Shutdown). Construct instances via [DisconnectedMessage] and
// [NewShutdown]; the zero Message is not meaningful.
type Message struct {
	kind   messageKind
	sender DeviceID // Disconnected: who terminated. Shutdown: the origin.
	fault  *Fault   // Disconnected only; nil means orderly completion.
}

// DisconnectedMessage reports that sender terminated. A nil fault means
// sender completed its computation successfully (orderly completion).
func DisconnectedMessage(sender DeviceID, fault *Fault) Message {
	return Message{kind: msgDisconnected, sender: sender, fault: fault}
}

// NewShutdown requests that the receiving Device wind down, attributing
// the request to origin.
func NewShutdown(origin DeviceID) Message {
	return Message{kind: msgShutdown, sender: origin}
}

// IsDisconnected reports whether this is a Disconnected message, and if so,
// the DeviceID of the peer that terminated and the Fault it terminated
// with (nil for orderly completion).
func (m Message) IsDisconnected() (sender DeviceID, fault *Fault, ok bool) {
	if m.kind != msgDisconnected {
		return 0, nil, false
	}
	return m.sender, m.fault, true
}

// IsShutdown reports whether this is a Shutdown message, and if so, the
// DeviceID that originated the request.
func (m Message) IsShutdown() (origin DeviceID, ok bool) {
	if m.kind != msgShutdown {
		return 0, false
	}
	return m.sender, true
}

func (m Message) String() string {
	switch m.kind {
	case msgDisconnected:
		if m.fault == nil {
			return "disconnected(" + m.sender.String() + ", ok)"
		}
		return "disconnected(" + m.sender.String() + ", " + m.fault.String() + ")"
	case msgShutdown:
		return "shutdown(" + m.sender.String() + ")"
	default:
		return "message(invalid)"
	}
}
