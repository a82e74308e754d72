package backplane

// plugboard is the shared, concurrency-safe mailbox plus a queue of pending
// subscription edits, jointly owned by a Device and every live Line
// pointing at it. Any number of goroutines may push to either queue
// concurrently; the owning Device is the sole consumer of messages and the
// sole draining party of lineOps.
//
// lineOps is not the source of truth for the subscriber set — it is a
// replay log. The Device drains it into its linemap before every terminal
// broadcast (and may drain opportunistically at other times). This keeps
// the write path (Line.LinkLine) a single non-blocking push, while letting
// the Device own the authoritative subscriber list without taking a lock
// on every send.
type plugboard struct {
	lineOps  *queue[lineOp]
	messages *queue[Message]
}

func newPlugboard() *plugboard {
	return &plugboard{
		lineOps:  newQueue[lineOp](),
		messages: newQueue[Message](),
	}
}

// plug enqueues an Attach edit. errOnClosed is returned, unmodified, if the
// plugboard has already been closed.
func (p *plugboard) plug(line Line, errOnClosed error) error {
	if err := p.lineOps.push(attachOp(line)); err != nil {
		return errOnClosed
	}
	return nil
}

// unplug enqueues a Detach edit. errOnClosed is returned, unmodified, if
// the plugboard has already been closed.
func (p *plugboard) unplug(did DeviceID, errOnClosed error) error {
	if err := p.lineOps.push(detachOp(did)); err != nil {
		return errOnClosed
	}
	return nil
}

// send pushes msg onto the message queue, failing iff closed — in which
// case msg is returned unmodified so the caller can reuse or inspect it.
func (p *plugboard) send(msg Message) (Message, error) {
	if err := p.messages.push(msg); err != nil {
		return msg, err
	}
	return Message{}, nil
}

// close idempotently closes both queues, so no further edits or messages
// are admitted.
func (p *plugboard) close() {
	p.lineOps.close()
	p.messages.close()
}
