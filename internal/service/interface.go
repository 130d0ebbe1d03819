package service

import "context"

// Emitter is the outbound side of the transport: room subscription plus
// unicast, room multicast, and global broadcast. Implemented by hub.Hub;
// tests substitute a recording fake so handlers run without a live
// transport.
type Emitter interface {
	Subscribe(connID, room string)
	Unsubscribe(connID, room string)
	Unicast(connID string, event interface{})
	ToRoom(room string, event interface{}, exclude string)
	Broadcast(event interface{})
}

// ChatService is the event router: it binds inbound events to a
// connection's identity, mutates shared state, and emits to the computed
// recipient set. Malformed or unauthorized input is dropped silently; no
// handler returns an error to the transport.
type ChatService interface {
	HandleJoin(ctx context.Context, connID, username string)
	HandleSendMessage(ctx context.Context, connID, body, room, image string)
	HandlePrivateMessage(ctx context.Context, connID, toUserID, body string)
	HandleAddReaction(ctx context.Context, connID, messageID, emoji string)
	HandleJoinRoom(ctx context.Context, connID, room string)
	HandleTypingStart(ctx context.Context, connID string)
	HandleTypingStop(ctx context.Context, connID string)
	HandleEditMessage(ctx context.Context, connID, messageID, content string)
	HandleDeleteMessage(ctx context.Context, connID, messageID string)
	HandleMessageRead(ctx context.Context, connID, messageID string)
	HandleDisconnect(ctx context.Context, connID string)
}
