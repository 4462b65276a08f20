package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	cacheport "staychat/internal/infrastructure/cache/port"
	chat "staychat/internal/pkg/chat/domain"
)

// Requests stores pending chat invitations in the fast store, keyed by the
// deterministic (sender, receiver) request key with a fixed TTL. Expired
// requests simply vanish; absence from storage is itself the expiry signal.
type Requests struct {
	cache cacheport.Cache
}

func NewRequests(cache cacheport.Cache) *Requests {
	return &Requests{cache: cache}
}

// Exists reports whether an identical invitation is already pending.
func (r *Requests) Exists(ctx context.Context, senderID, receiverID int64) (bool, error) {
	ok, err := r.cache.Exists(ctx, chat.ChatRequestKey(senderID, receiverID))
	if err != nil {
		return false, fmt.Errorf("requests: exists: %w", err)
	}
	return ok, nil
}

// Save stores the invitation under its request key with the request TTL.
func (r *Requests) Save(ctx context.Context, req *chat.ChatRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("requests: marshal: %w", err)
	}
	if err := r.cache.Set(ctx, req.RequestID, string(payload), chat.ChatRequestTTL); err != nil {
		return fmt.Errorf("requests: save: %w", err)
	}
	return nil
}

// Get loads an invitation by its id. A missing or expired request returns
// chat.ErrRequestNotFound.
func (r *Requests) Get(ctx context.Context, requestID string) (*chat.ChatRequest, error) {
	raw, err := r.cache.Get(ctx, requestID)
	if errors.Is(err, cacheport.ErrMiss) {
		return nil, chat.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("requests: get: %w", err)
	}
	var req chat.ChatRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, fmt.Errorf("requests: decode: %w", err)
	}
	return &req, nil
}

// Delete removes an invitation after accept or reject.
func (r *Requests) Delete(ctx context.Context, requestID string) error {
	if _, err := r.cache.Del(ctx, requestID); err != nil {
		return fmt.Errorf("requests: delete: %w", err)
	}
	return nil
}

// Received lists pending invitations addressed to the member.
func (r *Requests) Received(ctx context.Context, memberID int64) ([]chat.ChatRequest, error) {
	return r.list(ctx, fmt.Sprintf("chat:chatRequest:*:%d", memberID))
}

// Sent lists pending invitations the member proposed.
func (r *Requests) Sent(ctx context.Context, memberID int64) ([]chat.ChatRequest, error) {
	return r.list(ctx, fmt.Sprintf("chat:chatRequest:%d:*", memberID))
}

func (r *Requests) list(ctx context.Context, pattern string) ([]chat.ChatRequest, error) {
	keys, err := r.cache.Keys(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("requests: keys: %w", err)
	}
	reqs := make([]chat.ChatRequest, 0, len(keys))
	for _, key := range keys {
		req, err := r.Get(ctx, key)
		if errors.Is(err, chat.ErrRequestNotFound) {
			// Expired between Keys and Get.
			continue
		}
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, nil
}
