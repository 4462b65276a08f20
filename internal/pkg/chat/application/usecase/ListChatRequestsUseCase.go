package usecase

import (
	"context"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	"staychat/internal/pkg/chat/store"
)

// ListChatRequestsUseCase returns the pending invitations involving a
// member, either the ones addressed to them or the ones they proposed.
type ListChatRequestsUseCase struct {
	Requests *store.Requests
}

func NewListChatRequestsUseCase(requests *store.Requests) *ListChatRequestsUseCase {
	return &ListChatRequestsUseCase{Requests: requests}
}

func (uc *ListChatRequestsUseCase) Received(ctx context.Context, memberID int64) ([]chat.ChatRequest, error) {
	reqs, err := uc.Requests.Received(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return reqs, nil
}

func (uc *ListChatRequestsUseCase) Sent(ctx context.Context, memberID int64) ([]chat.ChatRequest, error) {
	reqs, err := uc.Requests.Sent(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return reqs, nil
}
