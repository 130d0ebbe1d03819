package audit

import (
	"context"

	"github.com/kim254ke/Chat-App-Server/pkg/log"
)

// Audit actions for the chat hub.
const (
	ActionJoin           = "chat.join"
	ActionSendMessage    = "chat.send_message"
	ActionPrivateMessage = "chat.private_message"
	ActionJoinRoom       = "chat.join_room"
	ActionEditMessage    = "chat.edit_message"
	ActionDeleteMessage  = "chat.delete_message"
	ActionDisconnect     = "chat.disconnect"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, connID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldConnID, connID).
		Msg(msg)
}

// LogWithDetail emits an audit log with an extra detail field.
func LogWithDetail(ctx context.Context, action, connID, detail, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldConnID, connID).
		Str(FieldDetail, detail).
		Msg(msg)
}
