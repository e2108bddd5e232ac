package mapper

import (
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/model"

	"gorm.io/datatypes"
)

type IntegrationMapper struct{}

func NewIntegrationMapper() *IntegrationMapper {
	return &IntegrationMapper{}
}

func (m *IntegrationMapper) SlackToEntity(row *model.SlackIntegration) *entity.SlackIntegration {
	if row == nil {
		return nil
	}
	return &entity.SlackIntegration{
		Id:               row.Id,
		UserId:           row.UserId,
		SlackUserId:      row.SlackUserId,
		BotAccessToken:   row.BotAccessToken,
		UserAccessToken:  row.UserAccessToken,
		BotRefreshToken:  row.BotRefreshToken,
		UserRefreshToken: row.UserRefreshToken,
		Scope:            row.Scope,
		ExpiresAt:        row.ExpiresAt,
		Raw:              []byte(row.Raw),
		CreatedAt:        row.CreatedAt,
	}
}

func (m *IntegrationMapper) SlackToModel(it *entity.SlackIntegration) *model.SlackIntegration {
	if it == nil {
		return nil
	}
	return &model.SlackIntegration{
		Id:               it.Id,
		UserId:           it.UserId,
		SlackUserId:      it.SlackUserId,
		BotAccessToken:   it.BotAccessToken,
		UserAccessToken:  it.UserAccessToken,
		BotRefreshToken:  it.BotRefreshToken,
		UserRefreshToken: it.UserRefreshToken,
		Scope:            it.Scope,
		ExpiresAt:        it.ExpiresAt,
		Raw:              datatypes.JSON(it.Raw),
		CreatedAt:        it.CreatedAt,
	}
}

func (m *IntegrationMapper) JiraToEntity(row *model.JiraIntegration) *entity.JiraIntegration {
	if row == nil {
		return nil
	}
	return &entity.JiraIntegration{
		Id:            row.Id,
		UserId:        row.UserId,
		JiraAccountId: row.JiraAccountId,
		AccessToken:   row.AccessToken,
		RefreshToken:  row.RefreshToken,
		CloudId:       row.CloudId,
		ExpiresAt:     row.ExpiresAt,
		Raw:           []byte(row.Raw),
		CreatedAt:     row.CreatedAt,
	}
}

func (m *IntegrationMapper) JiraToModel(it *entity.JiraIntegration) *model.JiraIntegration {
	if it == nil {
		return nil
	}
	return &model.JiraIntegration{
		Id:            it.Id,
		UserId:        it.UserId,
		JiraAccountId: it.JiraAccountId,
		AccessToken:   it.AccessToken,
		RefreshToken:  it.RefreshToken,
		CloudId:       it.CloudId,
		ExpiresAt:     it.ExpiresAt,
		Raw:           datatypes.JSON(it.Raw),
		CreatedAt:     it.CreatedAt,
	}
}

func (m *IntegrationMapper) NotionToEntity(row *model.NotionIntegration) *entity.NotionIntegration {
	if row == nil {
		return nil
	}
	return &entity.NotionIntegration{
		Id:            row.Id,
		UserId:        row.UserId,
		WorkspaceId:   row.WorkspaceId,
		WorkspaceName: row.WorkspaceName,
		AccessToken:   row.AccessToken,
		CreatedAt:     row.CreatedAt,
	}
}

func (m *IntegrationMapper) NotionToModel(it *entity.NotionIntegration) *model.NotionIntegration {
	if it == nil {
		return nil
	}
	return &model.NotionIntegration{
		Id:            it.Id,
		UserId:        it.UserId,
		WorkspaceId:   it.WorkspaceId,
		WorkspaceName: it.WorkspaceName,
		AccessToken:   it.AccessToken,
		CreatedAt:     it.CreatedAt,
	}
}
