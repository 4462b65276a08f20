package usecase

import (
	"context"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// GetHistoryInput carries the cursor parameters for a history page.
// LastSeenID nil means "most recent page".
type GetHistoryInput struct {
	RoomID     int64
	LastSeenID *int64
	PageSize   int
}

// HistoryPage is one page of messages, newest first.
type HistoryPage struct {
	Messages []chat.Message `json:"messages"`
	HasMore  bool           `json:"hasMore"`
}

// GetHistoryUseCase pages message history over two sources: the durable
// store and, for the first page only, the recency cache. Cached entries are
// kept only when strictly newer than the newest durable row, which both
// surfaces not-yet-drained messages and filters out entries the drain has
// already made durable. Later pages never consult the cache: anything older
// than a seen message is durable by the time it is paged past.
type GetHistoryUseCase struct {
	Repo   repository.ChatRepository
	Recent *store.RecentCache
}

func NewGetHistoryUseCase(repo repository.ChatRepository, recent *store.RecentCache) *GetHistoryUseCase {
	return &GetHistoryUseCase{Repo: repo, Recent: recent}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, in GetHistoryInput) (*HistoryPage, error) {
	if in.PageSize <= 0 {
		in.PageSize = 20
	}

	// One extra row decides hasMore.
	fetched, err := uc.Repo.GetMessages(ctx, in.RoomID, in.LastSeenID, in.PageSize+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	result := make([]chat.Message, 0, len(fetched)+8)

	if in.LastSeenID == nil {
		cached, err := uc.Recent.List(ctx, in.RoomID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		for _, m := range cached {
			if len(fetched) == 0 || m.Timestamp.After(fetched[0].Timestamp) {
				result = append(result, m)
			}
		}
	}
	result = append(result, fetched...)

	hasMore := len(result) > in.PageSize
	if hasMore {
		result = result[:in.PageSize]
	}

	return &HistoryPage{Messages: result, HasMore: hasMore}, nil
}
