package game

// eventQueue is the double-buffered per-room queue: `current` is drained
// during a processing pass, `next` accumulates follow-ups and newly routed
// events. Buffers swap only after `current` is fully drained, so an event
// enqueued during pass N is never processed before pass N+1.
type eventQueue struct {
	current []queuedEvent
	next    []queuedEvent
}

// push appends to the accumulating buffer.
func (q *eventQueue) push(e queuedEvent) {
	q.next = append(q.next, e)
}

// pop removes and returns the front of the processing buffer.
func (q *eventQueue) pop() (queuedEvent, bool) {
	if len(q.current) == 0 {
		return queuedEvent{}, false
	}
	e := q.current[0]
	q.current = q.current[1:]
	return e, true
}

// swap moves the accumulated buffer into position for the next pass.
// It is a no-op while `current` still holds events.
func (q *eventQueue) swap() {
	if len(q.current) != 0 {
		return
	}
	q.current, q.next = q.next, q.current[:0]
}

func (q *eventQueue) empty() bool {
	return len(q.current) == 0 && len(q.next) == 0
}
