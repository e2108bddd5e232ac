package contract

import (
	"context"

	"uni-chat-be/internal/entity"

	"github.com/google/uuid"
)

type IntegrationRepository interface {
	// Upserts keep the zero-or-one row per (user, provider) invariant.
	UpsertSlack(ctx context.Context, it *entity.SlackIntegration) error
	UpsertJira(ctx context.Context, it *entity.JiraIntegration) error
	UpsertNotion(ctx context.Context, it *entity.NotionIntegration) error

	FindSlack(ctx context.Context, userId uuid.UUID) (*entity.SlackIntegration, error)
	FindJira(ctx context.Context, userId uuid.UUID) (*entity.JiraIntegration, error)
	FindNotion(ctx context.Context, userId uuid.UUID) (*entity.NotionIntegration, error)

	// DeleteByUser removes all rows of the provider for the user.
	DeleteByUser(ctx context.Context, provider string, userId uuid.UUID) error
}
