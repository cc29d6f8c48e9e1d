package board

import "container/heap"

// event is a one-shot scheduled callback, fired once the board's master
// clock reaches FireTick. Disabled events are skipped and dropped
// without firing.
type event struct {
	FireTick int64
	Enabled  bool
	Trigger  func()
	index    int
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	return q[i].FireTick < q[j].FireTick
}
func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *eventQueue) Push(x any) {
	e := x.(*event)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Schedule queues trigger to fire once the board's clock reaches
// fireTick.
func (b *Board) Schedule(fireTick int64, trigger func()) {
	heap.Push(&b.events, &event{FireTick: fireTick, Enabled: true, Trigger: trigger})
}

// fireDue pops and runs every enabled event whose FireTick has been
// reached, in fire-tick order.
func (b *Board) fireDue(clock int64) {
	for b.events.Len() > 0 && b.events[0].FireTick <= clock {
		e := heap.Pop(&b.events).(*event)
		if e.Enabled {
			e.Trigger()
		}
	}
}

// rebaseEvents shifts every queued event's FireTick by -delta, used
// when the board rebases its clock origin.
func (b *Board) rebaseEvents(delta int64) {
	for _, e := range b.events {
		e.FireTick -= delta
	}
}
