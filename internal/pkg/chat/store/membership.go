package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	cacheport "staychat/internal/infrastructure/cache/port"
)

// membershipTTL bounds how long a hydrated member set lives before the next
// check forces a fresh read of the participant rows.
const membershipTTL = 24 * time.Hour

// ParticipantSource loads the active participant identifiers of a room from
// durable storage. Satisfied by the chat repository.
type ParticipantSource interface {
	ActiveParticipantIDs(ctx context.Context, roomID int64) ([]int64, error)
}

// Membership is the fast-store projection of "who is currently eligible to
// receive in this room": one set per room, hydrated on demand from the
// durable participant rows.
//
// Absence of the key means "unknown, rehydrate", not "nobody". An empty
// durable room produces no key at all, so a non-existent room keeps
// answering false without fabricating cache state.
type Membership struct {
	cache  cacheport.Cache
	source ParticipantSource
}

func NewMembership(cache cacheport.Cache, source ParticipantSource) *Membership {
	return &Membership{cache: cache, source: source}
}

// IsMember reports whether the member is in the room's live set, hydrating
// the set once from durable storage if the key is absent. A hydration
// failure degrades to false: delivery is blocked rather than allowed on an
// unverifiable membership.
func (m *Membership) IsMember(ctx context.Context, roomID, memberID int64) (bool, error) {
	key := memberSetKey(roomID)

	ok, err := m.cache.SIsMember(ctx, key, formatID(memberID))
	if err != nil {
		return false, fmt.Errorf("membership: check: %w", err)
	}
	if ok {
		return true, nil
	}

	present, err := m.cache.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("membership: exists: %w", err)
	}
	if present {
		// The set is live and the member genuinely is not in it.
		return false, nil
	}

	if err := m.hydrate(ctx, roomID); err != nil {
		// Durable storage unreachable: degrade to "not a member" so
		// delivery is blocked instead of allowed on an unverifiable set.
		slog.Warn("membership hydration failed", "room_id", roomID, "error", err)
		return false, nil
	}

	ok, err = m.cache.SIsMember(ctx, key, formatID(memberID))
	if err != nil {
		return false, fmt.Errorf("membership: recheck: %w", err)
	}
	return ok, nil
}

// Members returns the current live member ids of the room.
func (m *Membership) Members(ctx context.Context, roomID int64) ([]int64, error) {
	raw, err := m.cache.SMembers(ctx, memberSetKey(roomID))
	if err != nil {
		return nil, fmt.Errorf("membership: members: %w", err)
	}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Count returns the number of live members in the room.
func (m *Membership) Count(ctx context.Context, roomID int64) (int64, error) {
	n, err := m.cache.SCard(ctx, memberSetKey(roomID))
	if err != nil {
		return 0, fmt.Errorf("membership: count: %w", err)
	}
	return n, nil
}

// AddMembers puts the given members into the room's live set and refreshes
// its lifetime.
func (m *Membership) AddMembers(ctx context.Context, roomID int64, memberIDs ...int64) error {
	if len(memberIDs) == 0 {
		return nil
	}
	key := memberSetKey(roomID)
	members := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		members = append(members, formatID(id))
	}
	if err := m.cache.SAdd(ctx, key, members...); err != nil {
		return fmt.Errorf("membership: add: %w", err)
	}
	if err := m.cache.Expire(ctx, key, membershipTTL); err != nil {
		return fmt.Errorf("membership: expire: %w", err)
	}
	return nil
}

// RemoveMember drops a member from the room's live set.
func (m *Membership) RemoveMember(ctx context.Context, roomID, memberID int64) error {
	if err := m.cache.SRem(ctx, memberSetKey(roomID), formatID(memberID)); err != nil {
		return fmt.Errorf("membership: remove: %w", err)
	}
	return nil
}

// hydrate populates the full member set from durable storage. Both
// participants are always needed together, so the whole set is loaded, not
// just a queried id. A room with no active participants leaves no key.
func (m *Membership) hydrate(ctx context.Context, roomID int64) error {
	ids, err := m.source.ActiveParticipantIDs(ctx, roomID)
	if err != nil {
		return fmt.Errorf("membership: hydrate: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	return m.AddMembers(ctx, roomID, ids...)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
