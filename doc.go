// Package backplane implements an Erlang-style link/monitor primitive for
// cooperatively-scheduled goroutines.
//
// A [Device] wraps a user computation. It can be linked, statically (while
// both Devices are in scope) or dynamically (via a cheaply-cloned [Line]),
// to any number of peers. When a Device terminates — successfully, with an
// error, via a panic, or because it was simply garbage collected without
// ever disconnecting — it broadcasts exactly one Disconnected [Message] to
// every peer still monitoring it. [Watch] races the next inbound message
// against the result of a user computation; [PartManage] and [Manage] fold
// those inbound messages, and that result, into a single [Crash] outcome.
// All three are free functions,
// not Device methods, because Go does not allow a generic method on a
// non-generic receiver.
//
// # Architecture
//
// Four pieces compose the backplane:
//
//   - [linemap] — the Device-private, insertion-ordered roster of peers to
//     notify on termination.
//   - [plugboard] — the shared, concurrency-safe mailbox (and pending
//     subscription edit log) owned jointly by a Device and every Line that
//     points at it.
//   - [Line] — a cheap, clonable handle to another Device's plugboard.
//   - [Device] — owns one plugboard and one linemap, and drives the
//     supervisory combinators.
//
// # Concurrency
//
// A Device is driven from a single goroutine at a time (the one holding it),
// but many Devices run concurrently on independent goroutines. The shared
// plugboard is safe for any number of concurrent producers (Lines sending
// messages or queuing link edits) against its single consumer (the owning
// Device). Linking, unlinking, sending, and disconnecting never block;
// only [Watch] (and by extension [PartManage] / [Manage]) may suspend the
// calling goroutine.
//
// # Logging
//
// Structured logging is opt-in and backend-agnostic, via
// github.com/joeycumines/logiface — see [SetLogger] and [WithLogger].
package backplane
