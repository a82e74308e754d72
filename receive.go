package backplane

import (
	"context"

	"github.com/joeycumines/go-longpoll"
)

// ReceiveConfig configures [Device.Receive]. The zero value is valid and
// uses longpoll's documented defaults (MaxSize 16, MinSize 4,
// PartialTimeout 50ms).
type ReceiveConfig = longpoll.ChannelConfig

// Receive drains [Device.RawMessages] into handler, batched per cfg (nil
// for defaults), stopping early if handler returns an error. Returns
// io.EOF once the Device has disconnected and its message stream is fully
// drained. The windowed min/max-size, partial-timeout batching itself is
// [longpoll.Channel], specialised to Message by Go's generics rather than
// reimplemented here.
//
// Receive and [Watch]/[PartManage]/[Manage] are alternative ways to
// consume a Device's messages, not composable ones: RawMessages has a
// single internal consumer goroutine, so mixing Receive with a concurrent
// Watch loop against the same Device will race for messages.
func (d *Device) Receive(ctx context.Context, cfg *ReceiveConfig, handler func(Message) error) error {
	return longpoll.Channel(ctx, cfg, d.RawMessages(), handler)
}

// RawMessages returns a channel fed by a single internal goroutine that
// drains this Device's message queue, closing the channel once the queue
// is closed and fully drained. The first call starts the goroutine;
// subsequent calls return the same channel.
//
// Prefer [Watch]/[PartManage]/[Manage] unless the host specifically wants
// to poll messages through an ordinary Go channel — see [Device.Receive]
// for a batching convenience built on top of this.
func (d *Device) RawMessages() <-chan Message {
	d.rawOnce.Do(func() {
		ch := make(chan Message)
		d.rawCh = ch
		go func() {
			defer close(ch)
			for {
				// Grab the wait channel before checking for a pending
				// message — see [Watch]'s identical ordering for why
				// checking first would risk a lost wakeup.
				wait := d.messageWaitChan()
				msg, ok, closed := d.tryMessage()
				if ok {
					ch <- msg
					continue
				}
				if closed {
					return
				}
				<-wait
			}
		}()
	})
	return d.rawCh
}
