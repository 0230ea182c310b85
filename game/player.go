package game

import (
	"encoding/json"
	"sync"

	"golang.org/x/time/rate"
)

// ClientPacketEnvelope carries a decoded inbound packet together with the
// raw bytes it arrived as, so action payloads can be relayed verbatim.
type ClientPacketEnvelope struct {
	clientPacket ClientPacket
	rawBinary    []byte
	from         *Player
}

type Player struct {
	id          string
	socket      NetworkSession
	rateLimiter *rate.Limiter
	inbox       chan []byte
	pingChan    chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	events      chan<- ClientPacketEnvelope
	removeMe    chan<- *Player
}

func NewPlayer(id string, socket NetworkSession, events chan<- ClientPacketEnvelope, removeMe chan<- *Player) *Player {
	return &Player{
		id:          id,
		socket:      socket,
		rateLimiter: rate.NewLimiter(60, 180),
		inbox:       make(chan []byte, 256),
		pingChan:    make(chan struct{}, 1),
		done:        make(chan struct{}),
		events:      events,
		removeMe:    removeMe,
	}
}

func (p *Player) Id() string {
	return p.id
}

// Send queues data for delivery. It never blocks the caller: a player whose
// outbound buffer is full loses the frame rather than stalling the
// coordinator.
func (p *Player) Send(data []byte) {
	select {
	case <-p.done:
	case p.inbox <- data:
	default:
	}
}

func (p *Player) Ping() {
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
}

// CancelAndRelease releases both pumps. Safe to call more than once.
func (p *Player) CancelAndRelease() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

// ReadPump decodes inbound frames and forwards them to the coordinator. On
// read failure it reports the player for removal; a disconnect is just a
// leave the player didn't type.
func (p *Player) ReadPump() {
	for {
		data, err := p.socket.Read()
		if err != nil {
			break
		}

		var packet ClientPacket
		if err := json.Unmarshal(data, &packet); err != nil {
			continue
		}

		if packet.Type == CLIENT_ACTION && !p.rateLimiter.Allow() {
			continue
		}

		select {
		case p.events <- ClientPacketEnvelope{clientPacket: packet, rawBinary: data, from: p}:
		case <-p.done:
			p.socket.Close("")
			return
		}
	}

	p.socket.Close("")
	select {
	case p.removeMe <- p:
	case <-p.done:
	}
}

func (p *Player) WritePump() {
	defer p.socket.Close("")
	for {
		select {
		case data := <-p.inbox:
			if err := p.socket.Write(data); err != nil {
				return
			}
		case <-p.pingChan:
			if err := p.socket.Ping(); err != nil {
				return
			}
		case <-p.done:
			return
		}
	}
}
