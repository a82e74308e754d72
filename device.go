package backplane

import (
	"runtime"
	"sync"
)

// DeviceOption configures a Device at construction time. There is
// currently one: [WithLogger].
type DeviceOption func(*Device)

// WithLogger overrides the package-wide default logger (see [SetLogger])
// for one Device.
func WithLogger(l *Logger) DeviceOption {
	return func(d *Device) { d.log.logger = l }
}

// Device connects a user computation to the backplane. It owns one
// plugboard (shared with every Line derived from it) and one linemap (the
// private roster of peers to notify on termination).
//
// A Device must be driven from a single goroutine at a time — see the
// package doc comment's Concurrency section. The zero Device is not valid;
// construct one with [NewDevice].
type Device struct {
	pb   *plugboard
	lm   linemap
	done bool
	log  logState

	rawOnce sync.Once
	rawCh   chan Message

	// streamClosed latches once the message stream has observed a closed,
	// drained plugboard, distinct from `done` (which latches once *this*
	// Device has broadcast its own termination).
	streamClosed bool
}

// NewDevice creates a Device with an empty plugboard and linemap.
//
// Go has no deterministic destructor; NewDevice registers a
// [runtime.SetFinalizer] that performs the drop broadcast (a [FaultDrop]
// fault) if the Device is garbage collected without ever calling [Device.Disconnect]
// explicitly. This is best-effort and GC-timing dependent — call Disconnect
// (directly, or via [Manage]) whenever prompt, deterministic broadcast
// matters; do not rely on the finalizer for anything but a last-resort
// safety net.
func NewDevice(opts ...DeviceOption) *Device {
	d := &Device{pb: newPlugboard()}
	for _, o := range opts {
		o(d)
	}
	runtime.SetFinalizer(d, (*Device).finalize)
	return d
}

func (d *Device) finalize() {
	if !d.done {
		fault := FaultOf(FaultDrop)
		d.doDisconnect(&fault)
	}
}

// DeviceID returns this Device's stable identifier.
func (d *Device) DeviceID() DeviceID {
	return deviceIDOf(d.pb)
}

// Line returns a fresh Line sharing this Device's plugboard.
func (d *Device) Line() Line {
	return Line{pb: d.pb}
}

// Link statically links this Device with other, per mode. Static linking
// mutates both linemaps directly (bypassing the plugboard edit queue) and
// is intended for topologies fixed at construction time, with both Devices
// addressable by reference. Do not mix static linking with dynamic
// ([Device.LinkLine]) linking against the same peer — the two surfaces
// drift out of sync, because the dynamic surface's edits are only
// replayed into a linemap lazily.
//
// Link panics if other is d itself: self-linking would make a Device wait
// on its own termination, a guaranteed deadlock, and is a programming
// error rather than a runtime condition.
func (d *Device) Link(other *Device, mode LinkMode) {
	if d.DeviceID() == other.DeviceID() {
		panic("backplane: cannot link a device to itself")
	}
	if mode.monitor() {
		other.lm.attach(d.Line())
	}
	if mode.notify() {
		d.lm.attach(other.Line())
	}
}

// Unlink reverses a prior static [Device.Link]. Panics on self-unlink, for
// the same reason Link does.
func (d *Device) Unlink(other *Device, mode LinkMode) {
	if d.DeviceID() == other.DeviceID() {
		panic("backplane: cannot unlink a device from itself")
	}
	if mode.monitor() {
		other.lm.detach(d.DeviceID())
	}
	if mode.notify() {
		d.lm.detach(other.DeviceID())
	}
}

// LinkLine dynamically links this Device with the Device behind line, per
// mode, by routing Attach edits through the remote plugboard's edit queue
// (for the Monitor direction) and mutating this Device's own linemap
// directly (for the Notify direction, which is this Device's own
// synchronous state). Safer than [Device.Link] when only a [Line] to the
// peer is available, at the cost of the edit being replayed lazily rather
// than applied immediately.
//
// Panics on self-link, as [Device.Link] does.
func (d *Device) LinkLine(line Line, mode LinkMode) error {
	if d.DeviceID() == line.DeviceID() {
		panic("backplane: cannot link a device to itself")
	}
	if mode.monitor() {
		if err := line.pb.plug(d.Line(), ErrLinkDown); err != nil {
			return err
		}
	}
	if mode.notify() {
		d.lm.attach(line)
	}
	return nil
}

// UnlinkLine dynamically reverses a prior [Device.LinkLine]. Like the Rust
// source's Device::unlink_line (as opposed to [Line.UnlinkLine]), it
// panics on self-unlink, matching [Device.Unlink]'s behaviour rather than
// [Line.UnlinkLine]'s silent no-op — see DESIGN.md for the rationale.
func (d *Device) UnlinkLine(line Line, mode LinkMode) {
	if d.DeviceID() == line.DeviceID() {
		panic("backplane: cannot unlink a device from itself")
	}
	if mode.monitor() {
		_ = line.pb.unplug(d.DeviceID(), ErrLinkDown)
	}
	if mode.notify() {
		d.lm.detach(line.DeviceID())
	}
}

// Disconnect performs the terminal broadcast: closes the plugboard
// (refusing further subscriptions and messages), drains any outstanding
// line edits into the linemap so latecomers are not lost, then sends
// Disconnected(d.DeviceID(), fault) to every surviving peer. Safe to call
// more than once — only the first call broadcasts; fault is a nil pointer
// to broadcast orderly completion.
//
// Disconnect never suspends the calling goroutine.
func (d *Device) Disconnect(fault *Fault) {
	if d.done {
		return
	}
	d.doDisconnect(fault)
}

func (d *Device) doDisconnect(fault *Fault) {
	d.pb.close()
	for _, op := range d.pb.lineOps.drainAll() {
		d.lm.apply(op)
	}

	msg := DisconnectedMessage(d.DeviceID(), fault)
	for _, s := range d.lm.drain() {
		if s.line == nil {
			continue
		}
		_, _ = s.line.Send(msg)
	}
	d.done = true
	d.logDisconnect(fault)
}

func (d *Device) logDisconnect(fault *Fault) {
	l := d.log.get()
	if fault == nil {
		l.Debug().Str("device", d.DeviceID().String()).Log("backplane: device disconnected")
		return
	}
	origin, isCascade := fault.IsCascade()
	if isCascade && !allowFaultLog(origin) {
		return
	}
	l.Notice().
		Str("device", d.DeviceID().String()).
		Str("fault", fault.String()).
		Log("backplane: device faulted")
}

// detachSurvivor removes did from this Device's roster, used by the
// supervisory loop when a Disconnected(_, nil) message arrives: the
// orderly peer is unsubscribed without ending supervision. Falls back to
// queuing a Detach edit if did was never actually materialised into the
// linemap yet (its Attach is still sitting in the plugboard's edit log).
func (d *Device) detachSurvivor(did DeviceID) {
	if !d.lm.detach(did) {
		_ = d.pb.unplug(did, ErrLinkDown)
	}
}

// tryMessage attempts a non-blocking pop from the message queue.
func (d *Device) tryMessage() (msg Message, ok bool, closed bool) {
	if d.streamClosed {
		return Message{}, false, true
	}
	msg, ok, closed = d.pb.messages.tryPop()
	if closed && !ok {
		d.streamClosed = true
	}
	return
}

// messageWaitChan returns the channel to select on while waiting for the
// next message push or close.
func (d *Device) messageWaitChan() <-chan struct{} {
	return d.pb.messages.waitChan()
}
