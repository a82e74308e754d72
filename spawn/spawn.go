// Package spawn provides the minimal goroutine-runner [Go] needs to turn an
// ordinary function into the channel-shaped "future" that
// [github.com/joeycumines/go-backplane.Watch] races against a Device's
// message stream.
//
// This is the one deliberately stdlib-only corner of the module: starting a
// goroutine and recovering its panic is exactly what the `go` statement and
// `recover` already do, and no dependency in the example pack models a
// future/promise abstraction worth adapting for it (see DESIGN.md).
package spawn

import (
	"context"

	backplane "github.com/joeycumines/go-backplane"
)

// Go runs fn on a new goroutine, passing it ctx, and returns a channel that
// receives fn's single [backplane.Outcome] — its return value, or a
// recovered panic. Pass the returned channel to [backplane.Watch].
func Go[T any](ctx context.Context, fn func(context.Context) T) <-chan backplane.Outcome[T] {
	return backplane.Run(func() T { return fn(ctx) })
}
