package backplane

import (
	"context"
	"errors"
)

// Attempt is a Result-like computation outcome: [PartManage] and [Manage]
// need to distinguish a successful value from a failure value of a
// caller-chosen type, and Go has no built-in sum type for that. Construct
// one with [Ok] or [Err].
type Attempt[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Ok wraps a successful computation result.
func Ok[T, E any](v T) Attempt[T, E] {
	return Attempt[T, E]{value: v, ok: true}
}

// Err wraps a failed computation result.
func Err[T, E any](e E) Attempt[T, E] {
	return Attempt[T, E]{err: e}
}

// PartManage runs fn to completion on its own goroutine while supervising
// d, branching on every message that arrives in the meantime:
//
//   - fn completes with Ok(v): returns (d, v, nil) without broadcasting —
//     the caller decides if/when to disconnect.
//   - fn completes with Err(e): broadcasts a [FaultError], returns a
//     [Crash] wrapping ErrorCrash(e).
//   - fn panics: broadcasts a [FaultError], returns a Crash wrapping
//     PanicCrash.
//   - a linked peer disconnects with no fault: the sender is detached from
//     d's linemap and supervision continues — an orderly peer exit is not,
//     by itself, a reason to stop waiting on fn.
//   - a linked peer disconnects with a fault: d broadcasts a cascade fault
//     naming the peer as origin, and returns a Crash wrapping
//     CascadeCrash(origin, fault).
//   - d receives an explicit [Message] built by [NewShutdown]: d
//     broadcasts an orderly (nil-fault) disconnect and returns a Crash
//     wrapping PowerOffCrash.
//
// If ctx is cancelled first, PartManage returns ctx.Err() without
// disconnecting d. On every Crash return path, d has already disconnected —
// a Crash is only ever observed after the Device that produced it has
// broadcast its own termination.
func PartManage[T, E any](ctx context.Context, d *Device, fn func(context.Context) Attempt[T, E]) (*Device, T, error) {
	fut := Run(func() Attempt[T, E] { return fn(ctx) })

	for {
		w, err := Watch(ctx, d, fut)
		if err != nil {
			var panicErr *PanicError
			var zero T
			if !errors.As(err, &panicErr) {
				return d, zero, err
			}
			crash := PanicCrash[E](panicErr.Recovered)
			d.Disconnect(crash.faultFor())
			return d, zero, crash
		}

		if v, ok := w.IsCompleted(); ok {
			if v.ok {
				return d, v.value, nil
			}
			crash := ErrorCrash[E](v.err)
			d.Disconnect(crash.faultFor())
			return d, v.value, crash
		}

		msg, _ := w.IsMessaged()

		if sender, fault, ok := msg.IsDisconnected(); ok {
			var zero T
			if fault == nil {
				d.detachSurvivor(sender)
				continue
			}
			crash := CascadeCrash[E](sender, *fault)
			d.Disconnect(crash.faultFor())
			return d, zero, crash
		}

		if origin, ok := msg.IsShutdown(); ok {
			var zero T
			crash := PowerOffCrash[E](origin)
			d.Disconnect(crash.faultFor())
			return d, zero, crash
		}
	}
}

// Manage is [PartManage] plus an orderly disconnect on success: it
// broadcasts a nil-fault Disconnected to d's peers before returning, so
// callers never need to remember to disconnect the happy path themselves.
func Manage[T, E any](ctx context.Context, d *Device, fn func(context.Context) Attempt[T, E]) (T, error) {
	dev, v, err := PartManage(ctx, d, fn)
	if err != nil {
		var zero T
		return zero, err
	}
	dev.Disconnect(nil)
	return v, nil
}
