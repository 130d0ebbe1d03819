package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kim254ke/Chat-App-Server/internal/config"
	"github.com/kim254ke/Chat-App-Server/internal/domain"
	"github.com/kim254ke/Chat-App-Server/internal/hub"
	"github.com/kim254ke/Chat-App-Server/internal/service"
	"github.com/kim254ke/Chat-App-Server/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades HTTP requests to WebSocket connections and
// dispatches inbound envelopes to the chat service. Malformed envelopes
// are dropped; the chat protocol has no inbound error surface.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)
	h.hub.Register(client)
	log.L().Info().Str(log.FieldConnID, client.ID).Msg("connection opened")

	go client.WritePump()
	go client.ReadPump(h.handleMessage, h.handleClose)
}

func (h *WSHandler) handleClose(client *hub.Client) {
	h.service.HandleDisconnect(context.Background(), client.ID)
	log.L().Info().Str(log.FieldConnID, client.ID).Msg("connection closed")
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		log.L().Debug().Str(log.FieldConnID, client.ID).Msg("dropping malformed envelope")
		return
	}

	ctx := context.Background()

	switch base.Type {
	case domain.MsgTypeUserJoin:
		var msg domain.UserJoinMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleJoin(ctx, client.ID, msg.Username)

	case domain.MsgTypeSendMessage:
		var msg domain.SendMessageMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleSendMessage(ctx, client.ID, msg.Message, msg.Room, msg.Image)

	case domain.MsgTypePrivateMessage:
		var msg domain.PrivateMessageMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandlePrivateMessage(ctx, client.ID, msg.ToUserID, msg.Message)

	case domain.MsgTypeAddReaction:
		var msg domain.AddReactionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleAddReaction(ctx, client.ID, msg.MessageID, msg.Emoji)

	case domain.MsgTypeJoinRoom:
		var msg domain.JoinRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleJoinRoom(ctx, client.ID, msg.Room)

	case domain.MsgTypeTypingStart:
		h.service.HandleTypingStart(ctx, client.ID)

	case domain.MsgTypeTypingStop:
		h.service.HandleTypingStop(ctx, client.ID)

	case domain.MsgTypeEditMessage:
		var msg domain.EditMessageMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleEditMessage(ctx, client.ID, msg.ID, msg.Content)

	case domain.MsgTypeDeleteMessage:
		var msg domain.DeleteMessageMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleDeleteMessage(ctx, client.ID, msg.ID)

	case domain.MsgTypeMessageRead:
		var msg domain.MessageReadMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return
		}
		h.service.HandleMessageRead(ctx, client.ID, msg.MessageID)

	default:
		log.L().Debug().Str(log.FieldConnID, client.ID).Str("event", base.Type).Msg("unknown event type")
	}
}
