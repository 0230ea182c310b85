package game

import (
	"sync"

	"github.com/google/uuid"
)

type Idgen struct {
	ids    map[string]struct{}
	locker sync.Mutex
}

func NewIdGen() Idgen {
	return Idgen{ids: make(map[string]struct{})}
}

func (g *Idgen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()
	for {
		id := uuid.NewString()
		if _, taken := g.ids[id]; !taken {
			g.ids[id] = struct{}{}
			return id
		}
	}
}

func (g *Idgen) Dispose(id string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.ids, id)
}
