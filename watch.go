package backplane

import (
	"context"
	"fmt"
)

// PanicError wraps a value recovered from a panicking user computation,
// surfaced by [Watch] as an error so callers can use the ordinary
// error-handling idiom (errors.As) instead of a distinct return channel.
type PanicError struct {
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("backplane: user computation panicked: %v", e.Recovered)
}

// Watched is the result of one [Watch] call: either the user computation
// completed (with its raw output, whatever type that is — [PartManage]
// instantiates it with [Attempt] to get Result-like semantics), or a
// message arrived first.
type Watched[T any] struct {
	isCompleted bool
	completed   T
	messaged    Message
}

// Completed wraps a finished computation's output.
func Completed[T any](v T) Watched[T] {
	return Watched[T]{isCompleted: true, completed: v}
}

// Messaged wraps an arrived message.
func Messaged[T any](m Message) Watched[T] {
	return Watched[T]{messaged: m}
}

// IsCompleted reports whether the computation finished, returning its
// output if so.
func (w Watched[T]) IsCompleted() (T, bool) {
	return w.completed, w.isCompleted
}

// IsMessaged reports whether a message arrived first.
func (w Watched[T]) IsMessaged() (Message, bool) {
	return w.messaged, !w.isCompleted
}

// Watch races the next inbound message against fut, a channel produced by
// [Run] (or [github.com/joeycumines/go-backplane/spawn.Go]) that has
// already been started — calling Watch never (re)starts the computation,
// so it is safe to call repeatedly against the same fut, exactly as
// [PartManage]'s loop awaits the same future across iterations.
//
// Messages win ties: Watch always checks for an already-queued message
// before racing the select, so a message enqueued strictly before this
// call observes priority over a fut that is also already resolved. A
// message and a fut resolution becoming ready at virtually the same
// instant during the select itself is an inherent race no poll-based
// scheme can fully eliminate; Go's runtime select picks one of the ready
// cases pseudo-randomly in that narrow window.
//
// Watch returns ctx.Err() if ctx is cancelled before either the future
// resolves or a message arrives, and a *[PanicError] if the computation
// panicked.
func Watch[T any](ctx context.Context, d *Device, fut <-chan Outcome[T]) (Watched[T], error) {
	for {
		// Grab the wait channel before checking for a pending message: a
		// push that lands after this point is guaranteed to close the very
		// channel we're about to select on. Grabbing it after the check
		// would let a push racing between the two observe nothing and
		// close a channel we never end up waiting on — a lost wakeup.
		wait := d.messageWaitChan()
		if msg, ok, _ := d.tryMessage(); ok {
			return Messaged[T](msg), nil
		}

		select {
		case o := <-fut:
			if recovered, panicked := o.panicValue(); panicked {
				return Watched[T]{}, &PanicError{Recovered: recovered}
			}
			return Completed(o.value), nil
		case <-wait:
			continue
		case <-ctx.Done():
			return Watched[T]{}, ctx.Err()
		}
	}
}
