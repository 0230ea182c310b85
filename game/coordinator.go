package game

import (
	"time"

	"github.com/DoriPlg/OneStroke/shared/logger"
)

const (
	TICK_PERIOD = time.Millisecond * 250 // deadline check resolution
	PING_PERIOD = time.Second * 30
)

type Settings struct {
	MinPlayers     int
	MaxPlayers     int
	TurnTime       time.Duration
	TotalGameTime  time.Duration
	FormationGrace time.Duration
}

// Coordinator is the single actor that owns the waiting queue, the session
// registry and every room. All client events, disconnects and ticker firings
// are drained by one goroutine, so no two handlers for the same room ever
// run concurrently.
type Coordinator struct {
	settings Settings
	queue    *waitingQueue
	registry *sessionRegistry
	rooms    map[string]*Room
	players  map[string]*Player

	events   chan ClientPacketEnvelope
	connects chan *Player
	removals chan *Player

	idGen         UniqueIdGenerator
	tickerCreator PeriodicTickerChannelCreator
}

func NewCoordinator(settings Settings, idGen UniqueIdGenerator, tickerCreator PeriodicTickerChannelCreator) *Coordinator {
	return &Coordinator{
		settings:      settings,
		queue:         newWaitingQueue(),
		registry:      newSessionRegistry(),
		rooms:         make(map[string]*Room),
		players:       make(map[string]*Player),
		events:        make(chan ClientPacketEnvelope, 1024),
		connects:      make(chan *Player, 64),
		removals:      make(chan *Player, 64),
		idGen:         idGen,
		tickerCreator: tickerCreator,
	}
}

// Register wraps a freshly upgraded socket in a Player wired to this
// coordinator. The caller starts the pumps. Must not be called before Run.
func (c *Coordinator) Register(socket NetworkSession) *Player {
	p := NewPlayer(c.idGen.Generate(), socket, c.events, c.removals)
	c.connects <- p
	return p
}

func (c *Coordinator) Run(started chan struct{}) {
	ticker := c.tickerCreator.Create(TICK_PERIOD)
	pingTicker := c.tickerCreator.Create(PING_PERIOD)

	close(started)

	for {
		select {
		case p := <-c.connects:
			c.players[p.id] = p
			logger.Infof("[Coordinator] Session %s connected. %d online", p.id, len(c.players))

		case env := <-c.events:
			c.handleEvent(env)

		case p := <-c.removals:
			c.handleDisconnect(p)

		case now := <-ticker:
			c.handleTick(now)

		case <-pingTicker:
			for _, p := range c.players {
				p.Ping()
			}
		}
	}
}

func (c *Coordinator) handleEvent(env ClientPacketEnvelope) {
	switch env.clientPacket.Type {
	case CLIENT_JOIN_QUEUE:
		c.handleJoinQueue(env.from, time.Now())
	case CLIENT_LEAVE:
		c.handleLeave(env.from, time.Now())
	case CLIENT_END_TURN:
		c.handleEndTurn(env.from, time.Now())
	case CLIENT_ACTION:
		c.handleAction(env.from, env.rawBinary)
	}
}

func (c *Coordinator) handleJoinQueue(p *Player, now time.Time) {
	if _, inRoom := c.registry.roomOf(p.id); inRoom {
		return
	}
	if !c.queue.enqueue(p) {
		return
	}
	logger.Infof("[Coordinator] Session %s queued. Queue size: %d", p.id, c.queue.size())
	c.notifyQueueSize()
	c.formRooms(now)
}

// formRooms drains the queue into rooms of up to MaxPlayers, oldest joiners
// first, as long as at least MinPlayers remain. A burst of joins can form
// several rooms in one pass.
func (c *Coordinator) formRooms(now time.Time) {
	formed := false
	for c.queue.size() >= c.settings.MinPlayers {
		members := c.queue.dequeueUpTo(c.settings.MaxPlayers)
		roomId := c.idGen.Generate()
		room := newRoom(roomId, members, now.Add(c.settings.FormationGrace))
		c.rooms[roomId] = room
		for _, m := range members {
			c.registry.assign(m.id, roomId)
		}
		logger.Infof("[Room %s] Formed with %d members, activates at %v", roomId, len(members), room.activateAt)
		room.broadcast(MakePacketRoomAssigned(roomId, room.memberIds()))
		formed = true
	}
	if formed {
		c.notifyQueueSize()
	}
}

func (c *Coordinator) notifyQueueSize() {
	data := MakePacketQueueSize(c.queue.size()).Marshal()
	c.queue.each(func(p *Player) {
		p.Send(data)
	})
}

func (c *Coordinator) handleLeave(p *Player, now time.Time) {
	if c.queue.remove(p.id) {
		logger.Infof("[Coordinator] Session %s left the queue. Queue size: %d", p.id, c.queue.size())
		c.notifyQueueSize()
		return
	}
	if room := c.roomFor(p); room != nil {
		c.removeFromRoom(room, p, now)
	}
}

// handleDisconnect treats a dropped connection as an ordinary leave, then
// releases the player's pumps.
func (c *Coordinator) handleDisconnect(p *Player) {
	c.handleLeave(p, time.Now())
	delete(c.players, p.id)
	p.CancelAndRelease()
	logger.Infof("[Coordinator] Session %s disconnected. %d online", p.id, len(c.players))
}

func (c *Coordinator) handleEndTurn(p *Player, now time.Time) {
	room := c.roomFor(p)
	if room == nil || room.phase != PHASE_ACTIVE {
		return
	}
	// Silently ignore end-turn from anyone but the holder.
	if room.currentHolder() != p {
		return
	}
	room.advanceTurn(now, c.settings.TurnTime)
}

// handleAction relays a drawing payload to the rest of the room, but only
// when the sender holds the turn. Re-checked on every frame.
func (c *Coordinator) handleAction(p *Player, rawBinary []byte) {
	room := c.roomFor(p)
	if room == nil || room.phase != PHASE_ACTIVE {
		return
	}
	if room.currentHolder() != p {
		return
	}
	room.broadcastRawExcept(p, rawBinary)
}

func (c *Coordinator) handleTick(now time.Time) {
	// Snapshot: expiry handlers mutate the room table.
	rooms := make([]*Room, 0, len(c.rooms))
	for _, room := range c.rooms {
		rooms = append(rooms, room)
	}

	for _, room := range rooms {
		switch room.phase {
		case PHASE_FORMING:
			if !room.activateAt.After(now) {
				room.activate(now, c.settings.TotalGameTime, c.settings.TurnTime)
			}
		case PHASE_ACTIVE:
			if !room.gameDeadline.After(now) {
				c.endByGameTimer(room, now)
				continue
			}
			if !room.turnDeadline.After(now) {
				logger.Infof("[Room %s] Turn timed out for %s", room.id, room.currentHolder().id)
				room.broadcast(MakePacketTurnTimeout())
				room.advanceTurn(now, c.settings.TurnTime)
			}
		}
	}
}

func (c *Coordinator) removeFromRoom(room *Room, p *Player, now time.Time) {
	idx := room.removeMember(p)
	if idx == -1 {
		return
	}
	c.registry.unassign(p.id)
	logger.Infof("[Room %s] Member %s left. Remaining: %d", room.id, p.id, len(room.members))

	if len(room.members) < c.settings.MinPlayers {
		c.dissolveRoom(room)
		return
	}

	room.broadcast(MakePacketMemberList(room.memberIds()))

	if room.phase != PHASE_ACTIVE {
		return
	}

	heldTurn := idx == room.turnIndex
	if idx < room.turnIndex {
		room.turnIndex--
	}
	if room.turnIndex >= len(room.members) {
		room.turnIndex = 0
		room.startTurn(now, c.settings.TurnTime)
		return
	}
	if heldTurn {
		room.startTurn(now, c.settings.TurnTime)
	}
}

// dissolveRoom tears a room down after churn pushed it below MinPlayers.
// Survivors are NOT re-queued; they must join again.
func (c *Coordinator) dissolveRoom(room *Room) {
	logger.Infof("[Room %s] Dissolving, %d members remaining", room.id, len(room.members))
	room.phase = PHASE_ENDED
	room.clearDeadlines()
	room.broadcast(MakePacketRoomDissolved())
	for _, m := range room.members {
		c.registry.unassign(m.id)
	}
	room.members = nil
	delete(c.rooms, room.id)
	c.idGen.Dispose(room.id)
}

// endByGameTimer ends a room whose game clock ran out. Unlike dissolution,
// every survivor goes back to the waiting queue.
func (c *Coordinator) endByGameTimer(room *Room, now time.Time) {
	logger.Infof("[Room %s] Game time over after %v", room.id, now.Sub(room.gameStartedAt))
	room.phase = PHASE_ENDED
	room.clearDeadlines()
	room.broadcast(MakePacketGameTimeout())
	room.broadcast(MakePacketGameEnded())

	survivors := room.members
	room.members = nil
	delete(c.rooms, room.id)
	c.idGen.Dispose(room.id)

	for _, m := range survivors {
		c.registry.unassign(m.id)
		if c.queue.enqueue(m) {
			c.notifyQueueSize()
		}
	}
	c.formRooms(now)
}

func (c *Coordinator) roomFor(p *Player) *Room {
	roomId, ok := c.registry.roomOf(p.id)
	if !ok {
		return nil
	}
	return c.rooms[roomId]
}
