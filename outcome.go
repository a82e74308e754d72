package backplane

// Outcome is the result of a user computation run on its own goroutine.
// There is no way to poll a Go function incrementally, so instead the
// computation runs to completion (or panics) on a dedicated goroutine,
// and writes exactly one Outcome to a buffered(1) channel — the channel
// itself is the "future".
//
// Outcome is produced by [github.com/joeycumines/go-backplane/spawn.Go]
// (or internally by [PartManage]/[Manage]) and consumed by [Watch].
type Outcome[T any] struct {
	value     T
	recovered any
	panicked  bool
}

// ValueOutcome wraps a computation's successful return value.
func ValueOutcome[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// PanicOutcome wraps a recovered panic value. Intended for use by the
// goroutine runner that drives the user computation, not by ordinary
// callers.
func PanicOutcome[T any](recovered any) Outcome[T] {
	return Outcome[T]{recovered: recovered, panicked: true}
}

func (o Outcome[T]) panicValue() (any, bool) {
	return o.recovered, o.panicked
}

// Run executes fn on a new goroutine and returns a channel that receives
// exactly one Outcome: fn's return value, or a recovered panic. The
// channel is buffered so the goroutine never blocks delivering its result,
// even if nothing ever reads it.
func Run[T any](fn func() T) <-chan Outcome[T] {
	ch := make(chan Outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- PanicOutcome[T](r)
			}
		}()
		ch <- ValueOutcome(fn())
	}()
	return ch
}
