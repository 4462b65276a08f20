package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	"staychat/internal/pkg/chat/store"
)

// RejectChatRequestUseCase discards a pending invitation. Only the invited
// receiver may reject; the sender withdraws by letting the request expire.
type RejectChatRequestUseCase struct {
	Requests *store.Requests
}

func NewRejectChatRequestUseCase(requests *store.Requests) *RejectChatRequestUseCase {
	return &RejectChatRequestUseCase{Requests: requests}
}

func (uc *RejectChatRequestUseCase) Execute(ctx context.Context, requestID string, receiverID int64) error {
	req, err := uc.Requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, chat.ErrRequestNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if req.ReceiverID != receiverID {
		return chat.ErrNotRequestOwner
	}
	if err := uc.Requests.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
