package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlackIntegration struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	SlackUserId      string
	BotAccessToken   string
	UserAccessToken  string
	BotRefreshToken  string
	UserRefreshToken string
	Scope            string
	ExpiresAt        *time.Time
	Raw              []byte
	CreatedAt        time.Time
}

type JiraIntegration struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	JiraAccountId string
	AccessToken   string
	RefreshToken  string
	CloudId       string
	ExpiresAt     *time.Time
	Raw           []byte
	CreatedAt     time.Time
}

type NotionIntegration struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	WorkspaceId   string
	WorkspaceName string
	AccessToken   string
	CreatedAt     time.Time
}
