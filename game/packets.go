package game

import "encoding/json"

// Inbound event names (client -> coordinator).
const (
	CLIENT_JOIN_QUEUE = "join-queue"
	CLIENT_LEAVE      = "leave"
	CLIENT_ACTION     = "action"
	CLIENT_END_TURN   = "end-turn"
)

// Outbound event names (coordinator -> client).
const (
	SERVER_QUEUE_SIZE     = "queue-size"
	SERVER_ROOM_ASSIGNED  = "room-assigned"
	SERVER_MEMBER_LIST    = "member-list"
	SERVER_TURN_CHANGED   = "turn-changed"
	SERVER_TURN_TIMEOUT   = "turn-timeout"
	SERVER_GAME_STARTED   = "game-started"
	SERVER_GAME_TIMEOUT   = "game-timeout"
	SERVER_GAME_ENDED     = "game-ended"
	SERVER_ROOM_DISSOLVED = "room-dissolved"
)

type ClientPacket struct {
	Type string `json:"type"`
	// Data is the opaque drawing payload of an action packet. It is relayed
	// verbatim and never interpreted here.
	Data json.RawMessage `json:"data,omitempty"`
}

type ServerPacket struct {
	Type         string   `json:"type"`
	QueueSize    int      `json:"queueSize,omitempty"`
	RoomId       string   `json:"roomId,omitempty"`
	Members      []string `json:"members,omitempty"`
	PlayerId     string   `json:"playerId,omitempty"`
	SecondsLeft  int      `json:"secondsLeft,omitempty"`
	TotalSeconds int      `json:"totalSeconds,omitempty"`
}

func (sp *ServerPacket) Marshal() []byte {
	data, _ := json.Marshal(sp)
	return data
}

func MakePacketQueueSize(n int) *ServerPacket {
	return &ServerPacket{Type: SERVER_QUEUE_SIZE, QueueSize: n}
}

func MakePacketRoomAssigned(roomId string, members []string) *ServerPacket {
	return &ServerPacket{Type: SERVER_ROOM_ASSIGNED, RoomId: roomId, Members: members}
}

func MakePacketMemberList(members []string) *ServerPacket {
	return &ServerPacket{Type: SERVER_MEMBER_LIST, Members: members}
}

func MakePacketTurnChanged(playerId string, secondsLeft int) *ServerPacket {
	return &ServerPacket{Type: SERVER_TURN_CHANGED, PlayerId: playerId, SecondsLeft: secondsLeft}
}

func MakePacketTurnTimeout() *ServerPacket {
	return &ServerPacket{Type: SERVER_TURN_TIMEOUT}
}

func MakePacketGameStarted(totalSeconds int) *ServerPacket {
	return &ServerPacket{Type: SERVER_GAME_STARTED, TotalSeconds: totalSeconds}
}

func MakePacketGameTimeout() *ServerPacket {
	return &ServerPacket{Type: SERVER_GAME_TIMEOUT}
}

func MakePacketGameEnded() *ServerPacket {
	return &ServerPacket{Type: SERVER_GAME_ENDED}
}

func MakePacketRoomDissolved() *ServerPacket {
	return &ServerPacket{Type: SERVER_ROOM_DISSOLVED}
}
