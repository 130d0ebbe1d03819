package domain

// WebSocket message types from client.
const (
	MsgTypeUserJoin       = "user_join"
	MsgTypeSendMessage    = "send_message"
	MsgTypePrivateMessage = "private_message"
	MsgTypeAddReaction    = "add_reaction"
	MsgTypeJoinRoom       = "join_room"
	MsgTypeTypingStart    = "typing_start"
	MsgTypeTypingStop     = "typing_stop"
	MsgTypeEditMessage    = "edit_message"
	MsgTypeDeleteMessage  = "delete_message"
	MsgTypeMessageRead    = "message_read"
)

// WebSocket message types to client.
const (
	MsgTypeAvailableRooms = "available_rooms"
	MsgTypeMessageHistory = "message_history"
	MsgTypeUserList       = "user_list"
	MsgTypeReceiveMessage = "receive_message"
	MsgTypeMessageUpdated = "message_updated"
	MsgTypeMessageDeleted = "message_deleted"
	MsgTypeNotification   = "notification"
	MsgTypeTypingUsers    = "typing_users"
	MsgTypeRoomJoined     = "room_joined"
)

// Notification kinds.
const (
	NotifyJoin    = "join"
	NotifyLeave   = "leave"
	NotifyPrivate = "private"
)

// BaseMessage is the base structure for all inbound WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type UserJoinMessage struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type SendMessageMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Room    string `json:"room,omitempty"`
	Image   string `json:"image,omitempty"`
}

type PrivateMessageMessage struct {
	Type     string `json:"type"`
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
}

type AddReactionMessage struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

type JoinRoomMessage struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

type EditMessageMessage struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Content string `json:"content"`
}

type DeleteMessageMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type MessageReadMessage struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId"`
}

// Server -> Client messages

type AvailableRoomsEvent struct {
	Type  string   `json:"type"`
	Rooms []string `json:"rooms"`
}

type MessageHistoryEvent struct {
	Type     string     `json:"type"`
	Messages []*Message `json:"messages"`
}

type UserListEvent struct {
	Type  string  `json:"type"`
	Users []*User `json:"users"`
}

type ReceiveMessageEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message"`
}

type MessageUpdatedEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message"`
}

type MessageDeletedEvent struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId"`
}

type NotificationEvent struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Room    string `json:"room"`
}

type TypingUsersEvent struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

type RoomJoinedEvent struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

func NewNotification(kind, message, room string) *NotificationEvent {
	return &NotificationEvent{
		Type:    MsgTypeNotification,
		Kind:    kind,
		Message: message,
		Room:    room,
	}
}
