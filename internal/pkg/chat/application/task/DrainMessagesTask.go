package task

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	qport "staychat/internal/infrastructure/queue/port"
	"staychat/internal/pkg/chat/application/usecase"
)

// DrainMessagesTaskType is the queue task name for a drain pass.
const DrainMessagesTaskType = "chat:drain_queue"

// defaultDrainInterval is the cadence at which drain passes are scheduled.
const defaultDrainInterval = 30 * time.Second

// DrainInterval returns the drain cadence, overridable via DRAIN_INTERVAL
// (a Go duration string such as "10s").
func DrainInterval() time.Duration {
	if v := os.Getenv("DRAIN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid DRAIN_INTERVAL, using default", "value", v)
	}
	return defaultDrainInterval
}

// RegisterDrainMessagesTask binds the drain handler to the worker server.
// The task carries no payload; each run drains the staging queue once. A
// failed pass is logged and swallowed so asynq does not retry it, the next
// scheduled pass resumes from the working key instead.
func RegisterDrainMessagesTask(srv qport.Server, uc *usecase.DrainMessagesUseCase) {
	srv.Register(DrainMessagesTaskType, func(ctx context.Context, t qport.Task) error {
		ctx, cancel := context.WithTimeout(ctx, DrainInterval())
		defer cancel()

		n, err := uc.Execute(ctx)
		if err != nil {
			slog.Error("drain pass failed", "committed", n, "error", err)
			return nil
		}
		if n > 0 {
			slog.Info("drained staged messages", "committed", n)
		}
		return nil
	})
}

// ScheduleDrain enqueues drain passes at the drain interval until the
// context is canceled. UniqueTTL keeps at most one pending drain task across
// processes, so several API instances can all run the scheduler safely.
func ScheduleDrain(ctx context.Context, client qport.Client) {
	interval := DrainInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	enqueue := func() {
		_, err := client.Enqueue(ctx, qport.Task{Type: DrainMessagesTaskType}, qport.EnqueueOption{
			Queue:     "chat",
			UniqueTTL: interval,
		})
		if err != nil && !errors.Is(err, qport.ErrDuplicateTask) {
			slog.Error("enqueue drain task", "error", err)
		}
	}

	enqueue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
