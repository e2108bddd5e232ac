package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one chat_history row. Sessions are not stored anywhere;
// SessionId groups rows into a session and ChatName is denormalized onto
// every row of it. A Nil SessionId marks an orphan row.
type ChatMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId uuid.UUID
	ChatName  string
	Message   string
	Sender    string
	CreatedAt time.Time
}
