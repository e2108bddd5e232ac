package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	Sender    string    `json:"sender" validate:"required,oneof=user bot"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id,omitempty"`
	ChatName  string    `json:"chat_name,omitempty"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	SessionId *uuid.UUID `json:"session_id"`
	Message   string     `json:"message" validate:"required"`
}

type SendChatResponse struct {
	SessionId uuid.UUID            `json:"session_id"`
	Sent      *ChatMessageResponse `json:"sent"`
	Reply     *ChatMessageResponse `json:"reply"`
	// Persisted is false when the reply is an ephemeral error entry that
	// was never written to chat_history.
	Persisted bool `json:"persisted"`
}

type SessionSummaryResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Preview      string    `json:"preview"`
	LastActivity time.Time `json:"last_activity"`
}

type RenameSessionRequest struct {
	Name string `json:"name"`
}

type DeleteSessionRequest struct {
	Confirm bool `json:"confirm"`
}
