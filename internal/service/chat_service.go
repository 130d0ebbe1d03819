package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/kim254ke/Chat-App-Server/internal/audit"
	"github.com/kim254ke/Chat-App-Server/internal/domain"
	"github.com/kim254ke/Chat-App-Server/internal/history"
	"github.com/kim254ke/Chat-App-Server/internal/presence"
	"github.com/kim254ke/Chat-App-Server/internal/rooms"
	"github.com/kim254ke/Chat-App-Server/internal/store"
	"github.com/kim254ke/Chat-App-Server/internal/typing"
	"github.com/kim254ke/Chat-App-Server/pkg/log"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20

	imagePlaceholder = "\U0001F4F7 Image"
)

type chatService struct {
	emitter    Emitter
	registry   *presence.Registry
	directory  *rooms.Directory
	typing     *typing.Tracker
	messages   *history.Log
	mirror     store.MessageStore
	maxBodyLen int
	fetchLimit int64
}

func NewChatService(
	emitter Emitter,
	registry *presence.Registry,
	directory *rooms.Directory,
	tracker *typing.Tracker,
	messages *history.Log,
	mirror store.MessageStore,
	maxBodyLen int,
	fetchLimit int64,
) ChatService {
	return &chatService{
		emitter:    emitter,
		registry:   registry,
		directory:  directory,
		typing:     tracker,
		messages:   messages,
		mirror:     mirror,
		maxBodyLen: maxBodyLen,
		fetchLimit: fetchLimit,
	}
}

// HandleJoin moves a connection from unidentified to active: register the
// identity, subscribe it to its room, replay rooms and history to the
// joiner, announce the join to the room, and refresh everyone's presence
// list. A rejoin after disconnect lands back in the previous room.
func (s *chatService) HandleJoin(ctx context.Context, connID, username string) {
	username, ok := validUsername(username)
	if !ok {
		return
	}

	user := s.registry.Join(connID, username)
	s.emitter.Subscribe(connID, user.Room)

	s.emitter.Unicast(connID, &domain.AvailableRoomsEvent{
		Type:  domain.MsgTypeAvailableRooms,
		Rooms: s.directory.Public(),
	})
	s.emitter.Unicast(connID, &domain.MessageHistoryEvent{
		Type:     domain.MsgTypeMessageHistory,
		Messages: s.roomHistory(ctx, user.Room),
	})

	s.emitter.Broadcast(&domain.UserListEvent{
		Type:  domain.MsgTypeUserList,
		Users: s.registry.ListOnline(""),
	})
	s.emitter.ToRoom(user.Room, domain.NewNotification(
		domain.NotifyJoin,
		fmt.Sprintf("%s has joined the chat.", user.Username),
		user.Room,
	), connID)

	audit.LogWithDetail(ctx, audit.ActionJoin, connID, user.Room, "user joined")
}

// HandleSendMessage validates and records a public message, then
// multicasts it to the target room excluding the sender, who already has
// the message locally.
func (s *chatService) HandleSendMessage(ctx context.Context, connID, body, room, image string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online {
		return
	}

	body = sanitizeBody(body, s.maxBodyLen)
	if body == "" {
		if image == "" {
			return
		}
		body = imagePlaceholder
	}

	target := user.Room
	if room != "" {
		if !s.directory.AllowedJoinTarget(room, connID) {
			return
		}
		target = room
	}

	msg := s.newMessage(user, body, target)
	msg.Image = image

	s.messages.Append(msg)
	s.mirrorCreate(ctx, msg)

	s.emitter.ToRoom(target, &domain.ReceiveMessageEvent{
		Type:    domain.MsgTypeReceiveMessage,
		Message: msg,
	}, connID)

	audit.LogWithDetail(ctx, audit.ActionSendMessage, connID, target, "message sent")
}

// HandlePrivateMessage records a direct message under the deterministic
// two-party room and unicasts it to both participants, with a private
// notification to the recipient alone.
func (s *chatService) HandlePrivateMessage(ctx context.Context, connID, toUserID, body string) {
	sender := s.registry.Get(connID)
	recipient := s.registry.Get(toUserID)
	if sender == nil || !sender.Online || recipient == nil || sender.ID == recipient.ID {
		return
	}

	body = sanitizeBody(body, s.maxBodyLen)
	if body == "" {
		return
	}

	msg := s.newMessage(sender, body, rooms.PrivateRoomID(connID, toUserID))
	msg.IsPrivate = true
	msg.RecipientID = toUserID

	s.messages.Append(msg)
	s.mirrorCreate(ctx, msg)

	event := &domain.ReceiveMessageEvent{Type: domain.MsgTypeReceiveMessage, Message: msg}
	s.emitter.Unicast(connID, event)
	s.emitter.Unicast(toUserID, event)
	s.emitter.Unicast(toUserID, domain.NewNotification(
		domain.NotifyPrivate,
		fmt.Sprintf("New private message from %s.", sender.Username),
		msg.Room,
	))

	audit.LogWithDetail(ctx, audit.ActionPrivateMessage, connID, toUserID, "private message sent")
}

// HandleAddReaction upserts the sender's reaction and emits the updated
// message to the message's audience. Unknown message IDs are dropped.
func (s *chatService) HandleAddReaction(ctx context.Context, connID, messageID, emoji string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online || emoji == "" {
		return
	}

	updated := s.messages.AddOrReplaceReaction(messageID, connID, emoji)
	if updated == nil {
		return
	}
	s.mirrorUpdate(ctx, updated.ID, store.Patch{Reactions: updated.Reactions})

	s.emitUpdated(updated)
}

// HandleJoinRoom validates the target through the room directory, moves
// the user, and performs the full notification sequence: departure to the
// old room, arrival to the new, history and confirmation to the mover,
// fresh presence to everyone.
func (s *chatService) HandleJoinRoom(ctx context.Context, connID, room string) {
	if !s.directory.AllowedJoinTarget(room, connID) {
		return
	}

	change := s.registry.ChangeRoom(connID, room)
	if change == nil {
		return
	}

	// A mover stops counting as typing in either room.
	s.typing.Stop(connID)
	s.emitter.ToRoom(change.OldRoom, &domain.TypingUsersEvent{
		Type:  domain.MsgTypeTypingUsers,
		Users: s.typing.ActiveInRoom(change.OldRoom, connID),
	}, connID)

	s.emitter.Unsubscribe(connID, change.OldRoom)
	s.emitter.Subscribe(connID, room)

	s.emitter.ToRoom(change.OldRoom, domain.NewNotification(
		domain.NotifyLeave,
		fmt.Sprintf("%s left the room.", change.User.Username),
		change.OldRoom,
	), connID)
	s.emitter.ToRoom(room, domain.NewNotification(
		domain.NotifyJoin,
		fmt.Sprintf("%s joined the room.", change.User.Username),
		room,
	), connID)

	s.emitter.Broadcast(&domain.UserListEvent{
		Type:  domain.MsgTypeUserList,
		Users: s.registry.ListOnline(""),
	})
	s.emitter.Unicast(connID, &domain.MessageHistoryEvent{
		Type:     domain.MsgTypeMessageHistory,
		Messages: s.roomHistory(ctx, room),
	})
	s.emitter.Unicast(connID, &domain.RoomJoinedEvent{
		Type: domain.MsgTypeRoomJoined,
		Room: room,
	})

	audit.LogWithDetail(ctx, audit.ActionJoinRoom, connID, room, "room changed")
}

func (s *chatService) HandleTypingStart(ctx context.Context, connID string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online {
		return
	}

	s.typing.Start(connID, user.Username)
	s.broadcastTyping(user.Room, connID)
}

func (s *chatService) HandleTypingStop(ctx context.Context, connID string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online {
		return
	}

	s.typing.Stop(connID)
	s.broadcastTyping(user.Room, connID)
}

// HandleEditMessage replaces a message body and flags it edited. Not
// restricted to the original sender.
func (s *chatService) HandleEditMessage(ctx context.Context, connID, messageID, content string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online {
		return
	}

	content = sanitizeBody(content, s.maxBodyLen)
	if content == "" {
		return
	}

	updated := s.messages.Update(messageID, func(m *domain.Message) {
		m.Body = content
		m.Edited = true
	})
	if updated == nil {
		return
	}
	edited := true
	s.mirrorUpdate(ctx, updated.ID, store.Patch{Body: &content, Edited: &edited})

	s.emitUpdated(updated)
	audit.LogWithDetail(ctx, audit.ActionEditMessage, connID, messageID, "message edited")
}

// HandleDeleteMessage removes a message and tells its audience. Not
// restricted to the original sender.
func (s *chatService) HandleDeleteMessage(ctx context.Context, connID, messageID string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online {
		return
	}

	msg := s.messages.FindByID(messageID)
	if msg == nil {
		return
	}
	s.messages.Remove(messageID)
	s.mirrorDelete(ctx, messageID)

	event := &domain.MessageDeletedEvent{Type: domain.MsgTypeMessageDeleted, MessageID: messageID}
	if msg.IsPrivate {
		s.emitter.Unicast(msg.SenderID, event)
		s.emitter.Unicast(msg.RecipientID, event)
	} else {
		s.emitter.ToRoom(msg.Room, event, "")
	}

	audit.LogWithDetail(ctx, audit.ActionDeleteMessage, connID, messageID, "message deleted")
}

// HandleMessageRead flags a message read and emits the updated record.
func (s *chatService) HandleMessageRead(ctx context.Context, connID, messageID string) {
	user := s.registry.Get(connID)
	if user == nil || !user.Online {
		return
	}

	updated := s.messages.Update(messageID, func(m *domain.Message) {
		m.Read = true
	})
	if updated == nil {
		return
	}
	read := true
	s.mirrorUpdate(ctx, updated.ID, store.Patch{Read: &read})

	s.emitUpdated(updated)
}

// HandleDisconnect releases the connection: typing entry cleared,
// identity marked offline, last-known room notified, global presence
// refreshed. A connection that never joined releases silently.
func (s *chatService) HandleDisconnect(ctx context.Context, connID string) {
	s.typing.Stop(connID)

	user := s.registry.Leave(connID)
	if user == nil {
		return
	}

	s.emitter.ToRoom(user.Room, domain.NewNotification(
		domain.NotifyLeave,
		fmt.Sprintf("%s disconnected.", user.Username),
		user.Room,
	), connID)
	s.emitter.Broadcast(&domain.UserListEvent{
		Type:  domain.MsgTypeUserList,
		Users: s.registry.ListOnline(""),
	})

	audit.Log(ctx, audit.ActionDisconnect, connID, "user disconnected")
}

func (s *chatService) newMessage(sender *domain.User, body, room string) *domain.Message {
	return &domain.Message{
		ID:        uuid.New().String(),
		Sender:    sender.Username,
		SenderID:  sender.ID,
		Body:      body,
		Room:      room,
		Timestamp: time.Now().UTC(),
		Delivered: true,
		Reactions: []domain.Reaction{},
	}
}

// emitUpdated routes a message_updated event: room multicast for public
// messages, participant unicasts for private ones, whose derived room
// has no subscribers.
func (s *chatService) emitUpdated(msg *domain.Message) {
	event := &domain.MessageUpdatedEvent{Type: domain.MsgTypeMessageUpdated, Message: msg}
	if msg.IsPrivate {
		s.emitter.Unicast(msg.SenderID, event)
		s.emitter.Unicast(msg.RecipientID, event)
		return
	}
	s.emitter.ToRoom(msg.Room, event, "")
}

func (s *chatService) broadcastTyping(room, actorID string) {
	s.emitter.ToRoom(room, &domain.TypingUsersEvent{
		Type:  domain.MsgTypeTypingUsers,
		Users: s.typing.ActiveInRoom(room, actorID),
	}, actorID)
}

// roomHistory serves history from the in-memory tail, falling through to
// the durable mirror when the tail has nothing for the room (typically
// right after a restart).
func (s *chatService) roomHistory(ctx context.Context, room string) []*domain.Message {
	msgs := s.messages.QueryByRoom(room)
	if len(msgs) > 0 {
		return msgs
	}

	mirrored, err := s.mirror.FindByRoom(ctx, room, s.fetchLimit)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldRoom, room).Msg("mirror history fetch failed")
		return msgs
	}
	if mirrored == nil {
		return msgs
	}
	return mirrored
}

func (s *chatService) mirrorCreate(ctx context.Context, msg *domain.Message) {
	if err := s.mirror.Create(ctx, msg); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldMessageID, msg.ID).Msg("mirror create failed")
	}
}

func (s *chatService) mirrorUpdate(ctx context.Context, id string, patch store.Patch) {
	if _, err := s.mirror.UpdateByID(ctx, id, patch); err != nil && err != store.ErrNotFound {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldMessageID, id).Msg("mirror update failed")
	}
}

func (s *chatService) mirrorDelete(ctx context.Context, id string) {
	if _, err := s.mirror.DeleteByID(ctx, id); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldMessageID, id).Msg("mirror delete failed")
	}
}

// validUsername trims and validates a username: 3-20 printable
// characters, no control runes.
func validUsername(username string) (string, bool) {
	username = strings.TrimSpace(username)
	n := 0
	for _, r := range username {
		if !unicode.IsPrint(r) {
			return "", false
		}
		n++
	}
	if n < minUsernameLen || n > maxUsernameLen {
		return "", false
	}
	return username, true
}

// sanitizeBody trims a message body and caps its length in runes.
func sanitizeBody(body string, max int) string {
	body = strings.TrimSpace(body)
	if max > 0 {
		runes := []rune(body)
		if len(runes) > max {
			body = string(runes[:max])
		}
	}
	return body
}
