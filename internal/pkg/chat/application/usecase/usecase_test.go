package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"

	cacheAdapter "staychat/internal/infrastructure/cache/adapter"
	chat "staychat/internal/pkg/chat/domain"
	"staychat/internal/pkg/chat/store"
)

// memRepo is an in-memory chat repository for exercising use cases without
// a database.
type memRepo struct {
	mu           sync.Mutex
	nextRoomID   int64
	nextMsgID    int64
	rooms        map[int64]bool
	participants map[string]*chat.Participant
	members      map[int64]chat.MemberInfo
	messages     []chat.Message

	insertErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		rooms:        make(map[int64]bool),
		participants: make(map[string]*chat.Participant),
		members:      make(map[int64]chat.MemberInfo),
	}
}

func participantKey(roomID, memberID int64) string {
	return fmt.Sprintf("%d:%d", roomID, memberID)
}

func (r *memRepo) addMember(id int64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[id] = chat.MemberInfo{ID: id, Name: name}
}

func (r *memRepo) addRoom(memberA, memberB int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextRoomID++
	roomID := r.nextRoomID
	r.rooms[roomID] = true
	r.participants[participantKey(roomID, memberA)] = &chat.Participant{RoomID: roomID, MemberID: memberA, Active: true}
	r.participants[participantKey(roomID, memberB)] = &chat.Participant{RoomID: roomID, MemberID: memberB, Active: true}
	return roomID
}

func (r *memRepo) CreateRoomWithParticipants(_ context.Context, sender, receiver chat.MemberInfo) (int64, error) {
	return r.addRoom(sender.ID, receiver.ID), nil
}

func (r *memRepo) FindRoomByMembers(_ context.Context, memberA, memberB int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for roomID := range r.rooms {
		_, okA := r.participants[participantKey(roomID, memberA)]
		_, okB := r.participants[participantKey(roomID, memberB)]
		if okA && okB {
			return roomID, nil
		}
	}
	return 0, chat.ErrRoomNotFound
}

func (r *memRepo) RoomExists(_ context.Context, roomID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[roomID], nil
}

func (r *memRepo) GetParticipant(_ context.Context, roomID, memberID int64) (*chat.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[participantKey(roomID, memberID)]
	if !ok {
		return nil, chat.ErrNotAParticipant
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) ReactivateParticipant(_ context.Context, roomID, memberID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[participantKey(roomID, memberID)]
	if !ok {
		return chat.ErrNotAParticipant
	}
	p.Active = true
	return nil
}

func (r *memRepo) LeaveParticipant(_ context.Context, roomID, memberID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[participantKey(roomID, memberID)]
	if !ok {
		return chat.ErrNotAParticipant
	}
	p.Active = false
	return nil
}

func (r *memRepo) UpdateCustomName(_ context.Context, roomID, memberID int64, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[participantKey(roomID, memberID)]
	if !ok {
		return 0, nil
	}
	p.CustomRoomName = name
	return 1, nil
}

func (r *memRepo) ActiveParticipantIDs(_ context.Context, roomID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for _, p := range r.participants {
		if p.RoomID == roomID && p.Active {
			ids = append(ids, p.MemberID)
		}
	}
	return ids, nil
}

func (r *memRepo) UpdateLastRead(_ context.Context, roomID, memberID, messageID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[participantKey(roomID, memberID)]
	if !ok {
		return chat.ErrNotAParticipant
	}
	p.LastReadMessageID = &messageID
	return nil
}

func (r *memRepo) LatestMessageID(_ context.Context, roomID int64) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest int64
	found := false
	for _, m := range r.messages {
		if m.RoomID == roomID && m.ID > latest {
			latest = m.ID
			found = true
		}
	}
	return latest, found, nil
}

func (r *memRepo) InsertMessages(_ context.Context, msgs []chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, m := range msgs {
		r.nextMsgID++
		m.ID = r.nextMsgID
		m.MessageID = ""
		r.messages = append(r.messages, m)
	}
	return nil
}

func (r *memRepo) GetMessages(_ context.Context, roomID int64, before *int64, limit int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chat.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if m.RoomID != roomID {
			continue
		}
		if before != nil && m.ID >= *before {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memRepo) ListRoomsByMember(_ context.Context, memberID int64) ([]chat.RoomSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chat.RoomSummary
	for _, p := range r.participants {
		if p.MemberID != memberID || !p.Active {
			continue
		}
		s := chat.RoomSummary{RoomID: p.RoomID, CustomRoomName: p.CustomRoomName}
		for _, other := range r.participants {
			if other.RoomID == p.RoomID && other.MemberID != memberID {
				s.OtherMemberID = other.MemberID
				s.OtherMemberName = r.members[other.MemberID].Name
				s.OtherActive = other.Active
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *memRepo) FindMember(_ context.Context, memberID int64) (*chat.MemberInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[memberID]
	if !ok {
		return nil, chat.ErrMemberNotFound
	}
	return &m, nil
}

// testStores is the full fast-store wiring over one in-process Redis.
type testStores struct {
	mr         *miniredis.Miniredis
	membership *store.Membership
	unread     *store.Unread
	queue      *store.Queue
	recent     *store.RecentCache
	fanout     *store.Fanout
	requests   *store.Requests
}

func newTestStores(t *testing.T, repo *memRepo) *testStores {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := cacheAdapter.NewRedisAdapterWithClient(client)
	return &testStores{
		mr:         mr,
		membership: store.NewMembership(cache, repo),
		unread:     store.NewUnread(cache),
		queue:      store.NewQueue(cache),
		recent:     store.NewRecentCache(cache),
		fanout:     store.NewFanout(cache),
		requests:   store.NewRequests(cache),
	}
}
