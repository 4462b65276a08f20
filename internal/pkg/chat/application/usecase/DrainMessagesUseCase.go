package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// ErrUnresolvedReference marks a staged message whose room or sender no
// longer resolves in the durable store. It fails the whole batch so the
// working key is kept for inspection and retry.
var ErrUnresolvedReference = errors.New("drain: staged message references unknown room or member")

// DrainMessagesUseCase commits staged messages to the durable store. A
// leftover working batch from an interrupted pass is always committed first,
// then the live queue is claimed and committed as its own pass. Each pass is
// all-or-nothing: on any failure the working key is kept so the next drain
// retries the same batch, and duplicate commits stay bounded to one batch.
type DrainMessagesUseCase struct {
	Repo  repository.ChatRepository
	Queue *store.Queue
}

func NewDrainMessagesUseCase(repo repository.ChatRepository, queue *store.Queue) *DrainMessagesUseCase {
	return &DrainMessagesUseCase{Repo: repo, Queue: queue}
}

// Execute runs the recovery pass and then the regular pass. It returns the
// total number of messages committed.
func (uc *DrainMessagesUseCase) Execute(ctx context.Context) (int, error) {
	committed := 0

	pending, ok, err := uc.Queue.PendingBatch(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if ok {
		if err := uc.commitBatch(ctx, pending); err != nil {
			return committed, err
		}
		committed += len(pending)
	}

	batch, ok, err := uc.Queue.ClaimBatch(ctx)
	if err != nil {
		return committed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return committed, nil
	}
	if err := uc.commitBatch(ctx, batch); err != nil {
		return committed, err
	}
	committed += len(batch)
	return committed, nil
}

// commitBatch verifies every message's references, inserts the batch in one
// transaction and releases the working key only after the commit. Any
// failure leaves the working key in place.
func (uc *DrainMessagesUseCase) commitBatch(ctx context.Context, batch []chat.Message) error {
	for i := range batch {
		if err := uc.resolve(ctx, &batch[i]); err != nil {
			return err
		}
	}
	if len(batch) > 0 {
		if err := uc.Repo.InsertMessages(ctx, batch); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	if err := uc.Queue.ReleaseBatch(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (uc *DrainMessagesUseCase) resolve(ctx context.Context, m *chat.Message) error {
	exists, err := uc.Repo.RoomExists(ctx, m.RoomID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !exists {
		return fmt.Errorf("%w: room %d", ErrUnresolvedReference, m.RoomID)
	}
	if _, err := uc.Repo.FindMember(ctx, m.SenderID); err != nil {
		if errors.Is(err, chat.ErrMemberNotFound) {
			return fmt.Errorf("%w: member %d", ErrUnresolvedReference, m.SenderID)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
