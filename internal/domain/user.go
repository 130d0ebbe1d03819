package domain

import "time"

// User binds a connection ID to a chat identity. The connection ID is
// the stable handle for the lifetime of the underlying transport session;
// the record itself survives disconnects so a rejoin restores the prior room.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Room     string    `json:"room"`
	Online   bool      `json:"online"`
	JoinedAt time.Time `json:"joinedAt"`
}
