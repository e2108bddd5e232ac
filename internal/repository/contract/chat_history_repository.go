package contract

import (
	"context"

	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatHistoryRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// RenameSession updates chat_name on every row of the session.
	RenameSession(ctx context.Context, userId, sessionId uuid.UUID, name string) error

	// DeleteSession hard-deletes every row of the session.
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}
