package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SlackIntegration struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	SlackUserId      string    `gorm:"type:varchar(50)"`
	BotAccessToken   string    `gorm:"type:text"`
	UserAccessToken  string    `gorm:"type:text"`
	BotRefreshToken  string    `gorm:"type:text"`
	UserRefreshToken string    `gorm:"type:text"`
	Scope            string    `gorm:"type:text"`
	ExpiresAt        *time.Time
	Raw              datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
}

func (SlackIntegration) TableName() string {
	return "slack_integration"
}

type JiraIntegration struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	JiraAccountId string    `gorm:"type:varchar(255)"`
	AccessToken   string    `gorm:"type:text"`
	RefreshToken  string    `gorm:"type:text"`
	CloudId       string    `gorm:"type:varchar(255)"`
	ExpiresAt     *time.Time
	Raw           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (JiraIntegration) TableName() string {
	return "jira_integration"
}

type NotionIntegration struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	WorkspaceId   string    `gorm:"type:varchar(255)"`
	WorkspaceName string    `gorm:"type:varchar(255)"`
	AccessToken   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (NotionIntegration) TableName() string {
	return "notion_integration"
}
