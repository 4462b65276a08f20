package realtime

import (
	"sync"
)

// Router coordinates websocket sessions and logical rooms on this server
// process. It keeps one active Connection per member while allowing
// efficient fan-out to all local members subscribed to a room. Cross-process
// delivery is not its concern; the fan-out subscriber feeds Broadcast on
// every instance.
type Router struct {
	mu             sync.RWMutex
	sessions       map[string]*Connection            // sessionID -> connection
	memberSessions map[string]string                 // memberID -> sessionID
	rooms          map[string]map[string]*Connection // roomID -> sessionID -> connection
	sessionRooms   map[string]map[string]struct{}    // sessionID -> set of roomIDs
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:       make(map[string]*Connection),
		memberSessions: make(map[string]string),
		rooms:          make(map[string]map[string]*Connection),
		sessionRooms:   make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection for the given member. If a previous session
// exists, it is removed and closed after the swap to enforce one active
// socket per member.
func (r *Router) Attach(conn *Connection) {
	var previous *Connection

	r.mu.Lock()
	if existingID, ok := r.memberSessions[conn.MemberID]; ok {
		if existing := r.sessions[existingID]; existing != nil {
			previous = existing
			r.detachLocked(existingID)
		}
	}

	r.sessions[conn.ID] = conn
	r.memberSessions[conn.MemberID] = conn.ID
	r.sessionRooms[conn.ID] = make(map[string]struct{})
	r.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	r.detachLocked(conn.ID)
	r.mu.Unlock()
}

// Join adds the connection to the room.
func (r *Router) Join(roomID string, conn *Connection) {
	r.mu.Lock()
	if _, ok := r.sessions[conn.ID]; !ok {
		r.mu.Unlock()
		return
	}

	room := r.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[roomID] = room
	}
	room[conn.ID] = conn

	memberships := r.sessionRooms[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		r.sessionRooms[conn.ID] = memberships
	}
	memberships[roomID] = struct{}{}
	r.mu.Unlock()
}

// Leave removes the connection from the room.
func (r *Router) Leave(roomID string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(roomID, conn.ID)
	r.mu.Unlock()
}

// Broadcast writes payload to all local members joined to the room.
// excludeMemberID, when non-empty, prevents delivering to that member.
func (r *Router) Broadcast(roomID string, payload []byte, excludeMemberID string) int {
	r.mu.RLock()
	room := r.rooms[roomID]
	if len(room) == 0 {
		r.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range room {
		if excludeMemberID != "" && conn.MemberID == excludeMemberID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	r.mu.RUnlock()
	return delivered
}

// NotifyMember delivers payload to the current connection of the given member.
func (r *Router) NotifyMember(memberID string, payload []byte) bool {
	r.mu.RLock()
	sessionID, ok := r.memberSessions[memberID]
	if !ok {
		r.mu.RUnlock()
		return false
	}
	conn := r.sessions[sessionID]
	r.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.memberSessions = make(map[string]string)
	r.rooms = make(map[string]map[string]*Connection)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "router shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) {
	conn, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(r.sessions, sessionID)

	if current, ok := r.memberSessions[conn.MemberID]; ok && current == sessionID {
		delete(r.memberSessions, conn.MemberID)
	}

	for roomID := range r.sessionRooms[sessionID] {
		r.leaveLocked(roomID, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Router) leaveLocked(roomID string, sessionID string) {
	if sessionID == "" {
		return
	}
	room := r.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.rooms, roomID)
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, roomID)
		if len(memberships) == 0 {
			delete(r.sessionRooms, sessionID)
		}
	}
}
