package game

// waitingQueue is the FIFO holding area for players not yet grouped into a
// room. It is owned by the coordinator actor and never touched from outside
// its event loop, so it needs no locking.
type waitingQueue struct {
	order   []*Player
	present map[string]struct{}
}

func newWaitingQueue() *waitingQueue {
	return &waitingQueue{
		order:   make([]*Player, 0, 64),
		present: make(map[string]struct{}),
	}
}

// enqueue appends p unless it is already queued. Reports whether the queue
// changed.
func (q *waitingQueue) enqueue(p *Player) bool {
	if _, ok := q.present[p.id]; ok {
		return false
	}
	q.present[p.id] = struct{}{}
	q.order = append(q.order, p)
	return true
}

// dequeueUpTo removes and returns up to n players, oldest first.
func (q *waitingQueue) dequeueUpTo(n int) []*Player {
	if n > len(q.order) {
		n = len(q.order)
	}
	taken := make([]*Player, n)
	copy(taken, q.order[:n])
	q.order = append(q.order[:0], q.order[n:]...)
	for _, p := range taken {
		delete(q.present, p.id)
	}
	return taken
}

// remove drops the player with the given id. Reports whether the queue
// changed; removing an absent id is a no-op.
func (q *waitingQueue) remove(id string) bool {
	if _, ok := q.present[id]; !ok {
		return false
	}
	delete(q.present, id)
	for i, p := range q.order {
		if p.id == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

func (q *waitingQueue) contains(id string) bool {
	_, ok := q.present[id]
	return ok
}

func (q *waitingQueue) size() int {
	return len(q.order)
}

func (q *waitingQueue) each(fn func(p *Player)) {
	for _, p := range q.order {
		fn(p)
	}
}
