package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"

	"staychat/internal/infrastructure/cache/adapter"
	cacheport "staychat/internal/infrastructure/cache/port"
)

// newTestCache spins up an in-process Redis and wraps it in the cache adapter.
func newTestCache(t *testing.T) (*miniredis.Miniredis, cacheport.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, adapter.NewRedisAdapterWithClient(client)
}

// stubSource is a canned ParticipantSource for membership tests.
type stubSource struct {
	ids map[int64][]int64
	err error
}

func (s *stubSource) ActiveParticipantIDs(_ context.Context, roomID int64) ([]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids[roomID], nil
}
