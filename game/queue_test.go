package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func queuedIds(q *waitingQueue) []string {
	ids := []string{}
	q.each(func(p *Player) {
		ids = append(ids, p.id)
	})
	return ids
}

func TestQueue_FIFOAndIdempotence(t *testing.T) {
	t.Parallel()
	q := newWaitingQueue()
	a := NewPlayer("a", nil, nil, nil)
	b := NewPlayer("b", nil, nil, nil)
	c := NewPlayer("c", nil, nil, nil)

	assert.True(t, q.enqueue(a))
	assert.True(t, q.enqueue(b))
	assert.False(t, q.enqueue(a), "double enqueue must not duplicate the entry")
	assert.True(t, q.enqueue(c))

	assert.Equal(t, 3, q.size())
	assert.Equal(t, []string{"a", "b", "c"}, queuedIds(q))

	taken := q.dequeueUpTo(2)
	assert.Equal(t, 2, len(taken))
	assert.Equal(t, "a", taken[0].id)
	assert.Equal(t, "b", taken[1].id)
	assert.Equal(t, []string{"c"}, queuedIds(q))
	assert.False(t, q.contains("a"))

	// dequeued ids can re-enter
	assert.True(t, q.enqueue(a))
	assert.Equal(t, []string{"c", "a"}, queuedIds(q))
}

func TestQueue_DequeueMoreThanAvailable(t *testing.T) {
	t.Parallel()
	q := newWaitingQueue()
	q.enqueue(NewPlayer("a", nil, nil, nil))
	q.enqueue(NewPlayer("b", nil, nil, nil))

	taken := q.dequeueUpTo(5)
	assert.Equal(t, 2, len(taken))
	assert.Equal(t, 0, q.size())
	assert.Empty(t, q.dequeueUpTo(5))
}

func TestQueue_Remove(t *testing.T) {
	t.Parallel()
	q := newWaitingQueue()
	q.enqueue(NewPlayer("a", nil, nil, nil))
	q.enqueue(NewPlayer("b", nil, nil, nil))
	q.enqueue(NewPlayer("c", nil, nil, nil))

	assert.True(t, q.remove("b"))
	assert.Equal(t, []string{"a", "c"}, queuedIds(q))
	assert.False(t, q.remove("b"), "removing an absent id is a no-op")
	assert.False(t, q.remove("nope"))
	assert.Equal(t, 2, q.size())
}

func TestQueue_SizeMatchesMembership(t *testing.T) {
	t.Parallel()
	q := newWaitingQueue()
	players := map[string]*Player{}
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("p%d", i)
		players[id] = NewPlayer(id, nil, nil, nil)
	}

	expected := map[string]struct{}{}
	ops := []struct {
		id  string
		add bool
	}{
		{"p0", true}, {"p1", true}, {"p2", true}, {"p1", true},
		{"p1", false}, {"p3", true}, {"p0", false}, {"p0", false},
		{"p4", true}, {"p2", false}, {"p5", true}, {"p5", true},
	}

	for _, op := range ops {
		if op.add {
			q.enqueue(players[op.id])
			expected[op.id] = struct{}{}
		} else {
			q.remove(op.id)
			delete(expected, op.id)
		}
		assert.Equal(t, len(expected), q.size())
	}
}
