package game

// sessionRegistry maps a session id to the room currently holding it. A
// session appears here only while it is a member of a room; queued and
// unassigned players have no entry. Owned by the coordinator actor.
type sessionRegistry struct {
	rooms map[string]string
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{rooms: make(map[string]string)}
}

func (r *sessionRegistry) assign(sessionId, roomId string) {
	r.rooms[sessionId] = roomId
}

func (r *sessionRegistry) unassign(sessionId string) {
	delete(r.rooms, sessionId)
}

func (r *sessionRegistry) roomOf(sessionId string) (string, bool) {
	roomId, ok := r.rooms[sessionId]
	return roomId, ok
}
