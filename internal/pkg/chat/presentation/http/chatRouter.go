package http

import (
	cacheport "staychat/internal/infrastructure/cache/port"
	"staychat/internal/infrastructure/realtime"
	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"
	repoAdapter "staychat/internal/pkg/chat/persistence/repository/adapter"
	"staychat/internal/pkg/chat/presentation/controller"
	"staychat/internal/pkg/chat/store"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stores bundles the fast-store components shared between the HTTP layer
// and the background drain worker.
type Stores struct {
	Membership *store.Membership
	Unread     *store.Unread
	Queue      *store.Queue
	Recent     *store.RecentCache
	Fanout     *store.Fanout
	Requests   *store.Requests
}

// NewStores wires the fast-store components over one cache connection. The
// membership store hydrates from the durable participant rows.
func NewStores(cache cacheport.Cache, pool *pgxpool.Pool) *Stores {
	repo := repoAdapter.NewPgChatRepository(pool)
	return &Stores{
		Membership: store.NewMembership(cache, repo),
		Unread:     store.NewUnread(cache),
		Queue:      store.NewQueue(cache),
		Recent:     store.NewRecentCache(cache),
		Fanout:     store.NewFanout(cache),
		Requests:   store.NewRequests(cache),
	}
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, stores *Stores, router *realtime.Router, verifier *auth.TokenVerifier) {
	repo := repoAdapter.NewPgChatRepository(pool)

	requestChatUC := usecase.NewRequestChatUseCase(repo, stores.Requests)
	acceptUC := usecase.NewAcceptChatRequestUseCase(repo, stores.Requests, stores.Membership)
	rejectUC := usecase.NewRejectChatRequestUseCase(stores.Requests)
	listRequestsUC := usecase.NewListChatRequestsUseCase(stores.Requests)
	listRoomsUC := usecase.NewListRoomsUseCase(repo, stores.Unread)
	joinUC := usecase.NewJoinRoomUseCase(repo)
	historyUC := usecase.NewGetHistoryUseCase(repo, stores.Recent)
	sendUC := usecase.NewSendMessageUseCase(stores.Membership, stores.Unread, stores.Queue, stores.Recent, stores.Fanout)
	readUC := usecase.NewMarkAsReadUseCase(repo, stores.Unread)
	leaveUC := usecase.NewLeaveRoomUseCase(repo, stores.Membership, stores.Fanout)
	renameUC := usecase.NewRenameRoomUseCase(repo)

	requestCtl := controller.NewRequestChatController(requestChatUC)
	acceptCtl := controller.NewAcceptChatRequestController(acceptUC)
	rejectCtl := controller.NewRejectChatRequestController(rejectUC)
	listRequestsCtl := controller.NewListChatRequestsController(listRequestsUC)
	listRoomsCtl := controller.NewListRoomsController(listRoomsUC)
	historyCtl := controller.NewGetHistoryController(joinUC, historyUC)
	readCtl := controller.NewMarkAsReadController(readUC)
	leaveCtl := controller.NewLeaveRoomController(leaveUC)
	renameCtl := controller.NewRenameRoomController(renameUC)
	socketCtl := controller.NewChatSocketController(router, joinUC, sendUC, readUC)

	authed := g.Group("", auth.Middleware(verifier))

	// POST /api/v1/chat/requests -> propose a chat to another member
	authed.POST("/chat/requests", requestCtl.Handle())

	// GET /api/v1/chat/requests/received -> invitations addressed to the caller
	authed.GET("/chat/requests/received", listRequestsCtl.HandleReceived())

	// GET /api/v1/chat/requests/sent -> invitations the caller proposed
	authed.GET("/chat/requests/sent", listRequestsCtl.HandleSent())

	// POST /api/v1/chat/requests/:requestId/accept -> accept an invitation
	authed.POST("/chat/requests/:requestId/accept", acceptCtl.Handle())

	// POST /api/v1/chat/requests/:requestId/reject -> reject an invitation
	authed.POST("/chat/requests/:requestId/reject", rejectCtl.Handle())

	// GET /api/v1/chat/rooms -> the caller's rooms with unread counts
	authed.GET("/chat/rooms", listRoomsCtl.Handle())

	// GET /api/v1/chat/rooms/:roomId/messages -> paged message history
	authed.GET("/chat/rooms/:roomId/messages", historyCtl.Handle())

	// POST /api/v1/chat/rooms/:roomId/read -> mark the room as read
	authed.POST("/chat/rooms/:roomId/read", readCtl.Handle())

	// POST /api/v1/chat/rooms/:roomId/leave -> soft-leave the room
	authed.POST("/chat/rooms/:roomId/leave", leaveCtl.Handle())

	// PATCH /api/v1/chat/rooms/:roomId/name -> rename the room for the caller
	authed.PATCH("/chat/rooms/:roomId/name", renameCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	authed.GET("/chat/ws", socketCtl.Handle())
}
