package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatHistory rows are hard-deleted; the session-delete operation removes
// every row of a session for good.
type ChatHistory struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SessionId *uuid.UUID `gorm:"type:uuid;index"`
	ChatName  string     `gorm:"type:varchar(255)"`
	Message   string     `gorm:"type:text;not null"`
	Sender    string     `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
