package game

import (
	"time"

	"github.com/DoriPlg/OneStroke/shared/logger"
)

type RoomPhase int

const (
	PHASE_FORMING RoomPhase = iota
	PHASE_ACTIVE
	PHASE_ENDED
)

// Room is a fixed group of players sharing one turn sequence. The deadlines
// are plain timestamps checked against the coordinator's ticker; zeroing
// them (or dropping the room from the coordinator's table) is how a timer is
// cancelled, so an expiry can never fire for a room that was torn down.
type Room struct {
	id            string
	members       []*Player
	turnIndex     int
	phase         RoomPhase
	activateAt    time.Time
	turnDeadline  time.Time
	gameDeadline  time.Time
	gameStartedAt time.Time
}

func newRoom(id string, members []*Player, activateAt time.Time) *Room {
	return &Room{
		id:         id,
		members:    members,
		phase:      PHASE_FORMING,
		activateAt: activateAt,
	}
}

func (r *Room) memberIds() []string {
	ids := make([]string, len(r.members))
	for i, m := range r.members {
		ids[i] = m.id
	}
	return ids
}

func (r *Room) currentHolder() *Player {
	return r.members[r.turnIndex]
}

func (r *Room) broadcast(packet *ServerPacket) {
	data := packet.Marshal()
	for _, m := range r.members {
		m.Send(data)
	}
}

func (r *Room) broadcastRawExcept(sender *Player, data []byte) {
	for _, m := range r.members {
		if m != sender {
			m.Send(data)
		}
	}
}

// activate transitions Forming -> Active: the game clock starts and the
// first turn begins.
func (r *Room) activate(now time.Time, totalGameTime, turnTime time.Duration) {
	r.phase = PHASE_ACTIVE
	r.gameStartedAt = now
	r.gameDeadline = now.Add(totalGameTime)
	logger.Infof("[Room %s] Game started. %d members, ends at %v", r.id, len(r.members), r.gameDeadline)
	r.broadcast(MakePacketGameStarted(int(totalGameTime.Seconds())))
	r.startTurn(now, turnTime)
}

// startTurn arms a fresh per-turn deadline and announces the holder.
// Overwriting the previous deadline is the cancellation of the old timer.
func (r *Room) startTurn(now time.Time, turnTime time.Duration) {
	r.turnDeadline = now.Add(turnTime)
	holder := r.currentHolder()
	logger.Debugf("[Room %s] Turn for %s until %v", r.id, holder.id, r.turnDeadline)
	r.broadcast(MakePacketTurnChanged(holder.id, int(turnTime.Seconds())))
}

func (r *Room) advanceTurn(now time.Time, turnTime time.Duration) {
	r.turnIndex = (r.turnIndex + 1) % len(r.members)
	r.startTurn(now, turnTime)
}

// removeMember drops p from the member list and reports the index it held,
// or -1 if p was not a member. Turn index fixups are the caller's job.
func (r *Room) removeMember(p *Player) int {
	for i, m := range r.members {
		if m == p {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return i
		}
	}
	return -1
}

// clearDeadlines cancels both timers. Every teardown path runs through this
// before the room is dropped.
func (r *Room) clearDeadlines() {
	r.activateAt = time.Time{}
	r.turnDeadline = time.Time{}
	r.gameDeadline = time.Time{}
}
