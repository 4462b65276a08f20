package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "staychat/internal/pkg/chat/domain"
)

// PgChatRepository is the pgx-backed implementation of the chat repository
// port against the chat schema.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateRoomWithParticipants(ctx context.Context, sender, receiver chat.MemberInfo) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var roomID int64
	if err := tx.QueryRow(ctx,
		"INSERT INTO chat.room (created_at) VALUES (now()) RETURNING id",
	).Scan(&roomID); err != nil {
		return 0, err
	}

	// Two rows, created together. Each side's default room name carries the
	// counterpart's display name.
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO chat.participant (room_id, member_id, active, custom_room_name)
		VALUES ($1, $2, TRUE, $3)
	`, roomID, sender.ID, fmt.Sprintf("Chat with %s", receiver.Name))
	batch.Queue(`
		INSERT INTO chat.participant (room_id, member_id, active, custom_room_name)
		VALUES ($1, $2, TRUE, $3)
	`, roomID, receiver.ID, fmt.Sprintf("Chat with %s", sender.Name))

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, err
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return roomID, nil
}

func (r *PgChatRepository) FindRoomByMembers(ctx context.Context, memberA, memberB int64) (int64, error) {
	var roomID int64
	err := r.pool.QueryRow(ctx, `
		SELECT p1.room_id
		FROM chat.participant p1
		JOIN chat.participant p2 ON p2.room_id = p1.room_id
		WHERE p1.member_id = $1 AND p2.member_id = $2
	`, memberA, memberB).Scan(&roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, chat.ErrRoomNotFound
	}
	if err != nil {
		return 0, err
	}
	return roomID, nil
}

func (r *PgChatRepository) RoomExists(ctx context.Context, roomID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM chat.room WHERE id = $1)", roomID,
	).Scan(&exists)
	return exists, err
}

func (r *PgChatRepository) GetParticipant(ctx context.Context, roomID, memberID int64) (*chat.Participant, error) {
	var p chat.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT room_id, member_id, active, custom_room_name, last_read_message_id
		FROM chat.participant
		WHERE room_id = $1 AND member_id = $2
	`, roomID, memberID).Scan(&p.RoomID, &p.MemberID, &p.Active, &p.CustomRoomName, &p.LastReadMessageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotAParticipant
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgChatRepository) ReactivateParticipant(ctx context.Context, roomID, memberID int64) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant SET active = TRUE
		WHERE room_id = $1 AND member_id = $2
	`, roomID, memberID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotAParticipant
	}
	return nil
}

func (r *PgChatRepository) LeaveParticipant(ctx context.Context, roomID, memberID int64) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant SET active = FALSE
		WHERE room_id = $1 AND member_id = $2
	`, roomID, memberID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotAParticipant
	}
	return nil
}

func (r *PgChatRepository) UpdateCustomName(ctx context.Context, roomID, memberID int64, name string) (int64, error) {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant SET custom_room_name = $3
		WHERE room_id = $1 AND member_id = $2
	`, roomID, memberID, name)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgChatRepository) ActiveParticipantIDs(ctx context.Context, roomID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT member_id FROM chat.participant
		WHERE room_id = $1 AND active
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgChatRepository) UpdateLastRead(ctx context.Context, roomID, memberID, messageID int64) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant SET last_read_message_id = $3
		WHERE room_id = $1 AND member_id = $2
	`, roomID, memberID, messageID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotAParticipant
	}
	return nil
}

func (r *PgChatRepository) LatestMessageID(ctx context.Context, roomID int64) (int64, bool, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM chat.message
		WHERE room_id = $1 ORDER BY id DESC LIMIT 1
	`, roomID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (r *PgChatRepository) InsertMessages(ctx context.Context, msgs []chat.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, m := range msgs {
		batch.Queue(`
			INSERT INTO chat.message (room_id, sender_id, content, created_at)
			VALUES ($1, $2, $3, $4)
		`, m.RoomID, m.SenderID, m.Content, m.Timestamp)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PgChatRepository) GetMessages(ctx context.Context, roomID int64, before *int64, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, room_id, sender_id, content, created_at
		FROM chat.message
		WHERE room_id = $1 AND ($2::bigint IS NULL OR id < $2)
		ORDER BY id DESC
		LIMIT $3
	`, roomID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) ListRoomsByMember(ctx context.Context, memberID int64) ([]chat.RoomSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, me.custom_room_name, other.member_id, m.name, m.profile_url, other.active,
		       lm.content, lm.created_at
		FROM chat.room r
		JOIN chat.participant me ON me.room_id = r.id AND me.member_id = $1 AND me.active
		JOIN chat.participant other ON other.room_id = r.id AND other.member_id <> $1
		JOIN chat.member m ON m.id = other.member_id
		LEFT JOIN LATERAL (
			SELECT content, created_at FROM chat.message
			WHERE room_id = r.id ORDER BY id DESC LIMIT 1
		) lm ON TRUE
		ORDER BY lm.created_at DESC NULLS LAST, r.id DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []chat.RoomSummary
	for rows.Next() {
		var s chat.RoomSummary
		if err := rows.Scan(&s.RoomID, &s.CustomRoomName, &s.OtherMemberID, &s.OtherMemberName,
			&s.OtherProfileURL, &s.OtherActive, &s.LastMessage, &s.LastMessageAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PgChatRepository) FindMember(ctx context.Context, memberID int64) (*chat.MemberInfo, error) {
	var m chat.MemberInfo
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, profile_url FROM chat.member WHERE id = $1", memberID,
	).Scan(&m.ID, &m.Name, &m.ProfileURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
