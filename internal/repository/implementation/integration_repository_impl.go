package implementation

import (
	"context"
	"errors"
	"fmt"

	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/mapper"
	"uni-chat-be/internal/model"
	"uni-chat-be/internal/repository/contract"
	"uni-chat-be/pkg/integrations"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntegrationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntegrationMapper
}

func NewIntegrationRepository(db *gorm.DB) contract.IntegrationRepository {
	return &IntegrationRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntegrationMapper(),
	}
}

func (r *IntegrationRepositoryImpl) UpsertSlack(ctx context.Context, it *entity.SlackIntegration) error {
	m := r.mapper.SlackToModel(it)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SlackIntegration
		err := tx.Where("user_id = ?", m.UserId).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(m).Error
		}
		if err != nil {
			return err
		}
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		return tx.Save(m).Error
	})
}

func (r *IntegrationRepositoryImpl) UpsertJira(ctx context.Context, it *entity.JiraIntegration) error {
	m := r.mapper.JiraToModel(it)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.JiraIntegration
		err := tx.Where("user_id = ?", m.UserId).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(m).Error
		}
		if err != nil {
			return err
		}
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		return tx.Save(m).Error
	})
}

func (r *IntegrationRepositoryImpl) UpsertNotion(ctx context.Context, it *entity.NotionIntegration) error {
	m := r.mapper.NotionToModel(it)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.NotionIntegration
		err := tx.Where("user_id = ?", m.UserId).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(m).Error
		}
		if err != nil {
			return err
		}
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		return tx.Save(m).Error
	})
}

func (r *IntegrationRepositoryImpl) FindSlack(ctx context.Context, userId uuid.UUID) (*entity.SlackIntegration, error) {
	var m model.SlackIntegration
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).Order("created_at ASC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.SlackToEntity(&m), nil
}

func (r *IntegrationRepositoryImpl) FindJira(ctx context.Context, userId uuid.UUID) (*entity.JiraIntegration, error) {
	var m model.JiraIntegration
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).Order("created_at ASC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.JiraToEntity(&m), nil
}

func (r *IntegrationRepositoryImpl) FindNotion(ctx context.Context, userId uuid.UUID) (*entity.NotionIntegration, error) {
	var m model.NotionIntegration
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).Order("created_at ASC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.NotionToEntity(&m), nil
}

func (r *IntegrationRepositoryImpl) DeleteByUser(ctx context.Context, provider string, userId uuid.UUID) error {
	switch provider {
	case integrations.ProviderSlack:
		return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.SlackIntegration{}).Error
	case integrations.ProviderJira:
		return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.JiraIntegration{}).Error
	case integrations.ProviderNotion:
		return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.NotionIntegration{}).Error
	default:
		return fmt.Errorf("unknown integration provider: %s", provider)
	}
}
