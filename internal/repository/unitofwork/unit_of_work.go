package unitofwork

import (
	"context"

	"uni-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatHistoryRepository() contract.ChatHistoryRepository
	IntegrationRepository() contract.IntegrationRepository
}
