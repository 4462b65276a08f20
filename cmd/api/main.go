package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "staychat/cmd/api/router/v1"
	cacheAdapter "staychat/internal/infrastructure/cache/adapter"
	"staychat/internal/infrastructure/database"
	queueAdapter "staychat/internal/infrastructure/queue/adapter"
	"staychat/internal/infrastructure/realtime"
	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/task"
	"staychat/internal/pkg/chat/application/usecase"
	repoAdapter "staychat/internal/pkg/chat/persistence/repository/adapter"
	"staychat/internal/pkg/chat/presentation/controller"
	httpHandler "staychat/internal/pkg/chat/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or could not be loaded", "error", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	verifier := auth.NewTokenVerifier(secret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		slog.Error("connect to cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		slog.Error("create queue client", "error", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		slog.Error("create queue server", "error", err)
		os.Exit(1)
	}

	stores := httpHandler.NewStores(cache, pool)
	repo := repoAdapter.NewPgChatRepository(pool)

	drainUC := usecase.NewDrainMessagesUseCase(repo, stores.Queue)
	task.RegisterDrainMessagesTask(queueServer, drainUC)

	go func() {
		if err := queueServer.Run(ctx); err != nil {
			slog.Error("queue server stopped", "error", err)
		}
	}()
	go task.ScheduleDrain(ctx, queueClient)

	router := realtime.NewRouter()
	defer router.Close()

	go func() {
		deliver := controller.NewFanoutDeliverer(router)
		if err := stores.Fanout.Run(ctx, deliver); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("fan-out subscriber stopped", "error", err)
		}
	}()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, pool, stores, router, verifier)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		slog.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "error", err)
	}
}
