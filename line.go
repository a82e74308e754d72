package backplane

import "fmt"

// Line is a cheap, clonable handle to another Device's plugboard. It never
// owns the target Device, and survives the target's termination — after
// that, operations on it fail with an error instead of blocking or
// panicking: [ErrLinkDown] for sends and for edits queued on the closed
// target, [ErrDeviceDown] for the Notify half of [Line.LinkLine].
//
// Line is itself a small value type (one pointer); copying it is cheap and
// idiomatic — duplicating a handle is simply Go's ordinary value copy.
type Line struct {
	pb *plugboard
}

// DeviceID returns the identifier of this Line's target Device.
func (l Line) DeviceID() DeviceID {
	return deviceIDOf(l.pb)
}

// Send attempts to deliver msg to the target Device's message queue. On
// failure (the target has already disconnected), msg is returned unchanged
// alongside the error so the caller can inspect or reuse it instead of it
// being silently dropped.
func (l Line) Send(msg Message) (Message, error) {
	unsent, err := l.pb.send(msg)
	if err != nil {
		return unsent, fmt.Errorf("%w: send to %s", ErrLinkDown, l.DeviceID())
	}
	return Message{}, nil
}

// LinkLine links this Line's target with other's target. If mode has the
// Monitor bit set, other's target will notify this Line's target on
// termination; if mode has the Notify bit set, this Line's target will
// notify other's target on termination.
//
// LinkLine panics if l and other share the same target — self-linking
// would mean a Device waiting on its own termination, a guaranteed
// deadlock, and is treated as a programming error rather than a runtime
// condition.
func (l Line) LinkLine(other Line, mode LinkMode) error {
	if l.DeviceID() == other.DeviceID() {
		panic("backplane: cannot link a device to itself")
	}
	if mode.monitor() {
		if err := other.pb.plug(l, ErrLinkDown); err != nil {
			return err
		}
	}
	if mode.notify() {
		if err := l.pb.plug(other, ErrDeviceDown); err != nil {
			return err
		}
	}
	return nil
}

// UnlinkLine removes a link previously established with LinkLine,
// best-effort: edits against an already-closed target plugboard are
// silently dropped, since there is nothing left to unsubscribe from.
//
// Unlike LinkLine, UnlinkLine does not panic on self-unlink — it simply has
// no effect, matching the asymmetry in the underlying link/unlink pair: an
// unlink is a request to stop something, and "stop monitoring yourself" is
// vacuously already true.
func (l Line) UnlinkLine(other Line, mode LinkMode) {
	if l.DeviceID() == other.DeviceID() {
		return
	}
	if mode.monitor() {
		_ = other.pb.unplug(l.DeviceID(), ErrLinkDown)
	}
	if mode.notify() {
		_ = l.pb.unplug(other.DeviceID(), ErrDeviceDown)
	}
}

func (l Line) String() string {
	return fmt.Sprintf("Line<%s>", l.DeviceID())
}
