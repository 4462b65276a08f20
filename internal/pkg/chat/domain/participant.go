package chat

// Participant captures a member's durable relationship to a room.
// Primary key: (RoomID, MemberID). A room always has exactly two rows,
// created together; leaving flips Active rather than deleting the row so
// history survives a leave/re-invite cycle.
type Participant struct {
	RoomID            int64  `db:"room_id"`
	MemberID          int64  `db:"member_id"`
	Active            bool   `db:"active"`
	CustomRoomName    string `db:"custom_room_name"`
	LastReadMessageID *int64 `db:"last_read_message_id"`
}

// HasLeft reports whether the member has left the room.
func (p *Participant) HasLeft() bool {
	return p != nil && !p.Active
}

// MemberInfo is the denormalized display info of a member, used for
// participant rows and chat request payloads.
type MemberInfo struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	ProfileURL string `db:"profile_url" json:"profileUrl"`
}
