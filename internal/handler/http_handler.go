package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
	"github.com/kim254ke/Chat-App-Server/internal/history"
	"github.com/kim254ke/Chat-App-Server/internal/presence"
	"github.com/kim254ke/Chat-App-Server/internal/rooms"
	"github.com/kim254ke/Chat-App-Server/internal/store"
	"github.com/kim254ke/Chat-App-Server/pkg/log"
	"github.com/kim254ke/Chat-App-Server/pkg/response"
)

// HTTPHandler serves the REST surface next to the WebSocket endpoint:
// status, health, room list, and per-room message history.
type HTTPHandler struct {
	registry   *presence.Registry
	directory  *rooms.Directory
	messages   *history.Log
	mirror     store.MessageStore
	fetchLimit int64
	sf         singleflight.Group
	startedAt  time.Time
}

func NewHTTPHandler(
	registry *presence.Registry,
	directory *rooms.Directory,
	messages *history.Log,
	mirror store.MessageStore,
	fetchLimit int64,
) *HTTPHandler {
	return &HTTPHandler{
		registry:   registry,
		directory:  directory,
		messages:   messages,
		mirror:     mirror,
		fetchLimit: fetchLimit,
		startedAt:  time.Now().UTC(),
	}
}

func (h *HTTPHandler) RegisterRoutes(r *gin.Engine, ws *WSHandler) {
	r.GET("/", h.Status)
	r.GET("/api/health", h.Health)
	r.GET("/api/rooms", h.Rooms)
	r.GET("/api/messages/:room", h.RoomMessages)
	r.GET("/ws", gin.WrapF(ws.HandleWebSocket))
}

func (h *HTTPHandler) Status(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "chat server running",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).String(),
	})
}

func (h *HTTPHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "ok",
		"users":     len(h.registry.ListOnline("")),
		"timestamp": time.Now().UTC(),
	})
}

func (h *HTTPHandler) Rooms(c *gin.Context) {
	response.Success(c, h.directory.Public())
}

// RoomMessages returns a room's history in creation order: the in-memory
// tail when it has entries, otherwise the durable mirror. Concurrent
// identical mirror reads collapse through singleflight.
func (h *HTTPHandler) RoomMessages(c *gin.Context) {
	room := c.Param("room")
	if room == "" {
		response.BadRequest(c, "room is required")
		return
	}

	if msgs := h.messages.QueryByRoom(room); len(msgs) > 0 {
		response.Success(c, msgs)
		return
	}

	result, err, _ := h.sf.Do(room, func() (interface{}, error) {
		return h.mirror.FindByRoom(c.Request.Context(), room, h.fetchLimit)
	})
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Str(log.FieldRoom, room).Msg("mirror history fetch failed")
		response.InternalError(c, "failed to load message history")
		return
	}

	msgs, _ := result.([]*domain.Message)
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	response.Success(c, msgs)
}
