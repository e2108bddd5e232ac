package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/pkg/logger"
	"uni-chat-be/internal/repository/unitofwork"
	"uni-chat-be/pkg/events"
	"uni-chat-be/pkg/integrations"
	pktNats "uni-chat-be/pkg/nats"
	"uni-chat-be/pkg/signal"

	"github.com/google/uuid"
)

var ErrUnknownProvider = errors.New("unknown integration provider")

type IIntegrationService interface {
	// List returns the catalog merged with the user's connection state.
	// Connection rows are always read fresh so the view never goes stale
	// across instances; the static catalog needs no cache. force is
	// accepted by the load operation for callers that want to insist.
	List(ctx context.Context, userId uuid.UUID, force bool) ([]integrations.View, error)
	Connect(ctx context.Context, userId uuid.UUID, provider string, req *dto.ConnectIntegrationRequest) (*dto.ConnectIntegrationResponse, error)
	Disconnect(ctx context.Context, userId uuid.UUID, provider string, confirm bool) error
	// OnOAuthConnected runs the post-connect bookkeeping once an OAuth
	// callback has stored the provider tokens.
	OnOAuthConnected(ctx context.Context, userId uuid.UUID, provider string)
}

type integrationService struct {
	uowFactory     unitofwork.RepositoryFactory
	oauthService   IOAuthService
	signalBus      *signal.Bus
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewIntegrationService(
	uowFactory unitofwork.RepositoryFactory,
	oauthService IOAuthService,
	signalBus *signal.Bus,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIntegrationService {
	return &integrationService{
		uowFactory:     uowFactory,
		oauthService:   oauthService,
		signalBus:      signalBus,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *integrationService) List(ctx context.Context, userId uuid.UUID, force bool) ([]integrations.View, error) {
	connected := s.fetchConnections(ctx, userId)
	return integrations.Merge(integrations.Catalog(), connected), nil
}

// fetchConnections queries the three provider tables concurrently. A
// failing provider is logged and rendered as disconnected rather than
// failing the whole view.
func (s *integrationService) fetchConnections(ctx context.Context, userId uuid.UUID) []integrations.Connection {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.IntegrationRepository()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		connected []integrations.Connection
	)

	add := func(provider string, at time.Time) {
		mu.Lock()
		connected = append(connected, integrations.Connection{Provider: provider, ConnectedAt: at})
		mu.Unlock()
	}
	fail := func(provider string, err error) {
		s.log.Warn("integration", "failed to load connection state", map[string]interface{}{
			"provider": provider,
			"error":    err.Error(),
		})
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		row, err := repo.FindNotion(ctx, userId)
		if err != nil {
			fail(integrations.ProviderNotion, err)
			return
		}
		if row != nil {
			add(integrations.ProviderNotion, row.CreatedAt)
		}
	}()
	go func() {
		defer wg.Done()
		row, err := repo.FindSlack(ctx, userId)
		if err != nil {
			fail(integrations.ProviderSlack, err)
			return
		}
		if row != nil {
			add(integrations.ProviderSlack, row.CreatedAt)
		}
	}()
	go func() {
		defer wg.Done()
		row, err := repo.FindJira(ctx, userId)
		if err != nil {
			fail(integrations.ProviderJira, err)
			return
		}
		if row != nil {
			add(integrations.ProviderJira, row.CreatedAt)
		}
	}()
	wg.Wait()

	return connected
}

func (s *integrationService) Connect(ctx context.Context, userId uuid.UUID, provider string, req *dto.ConnectIntegrationRequest) (*dto.ConnectIntegrationResponse, error) {
	switch provider {
	case integrations.ProviderSlack, integrations.ProviderJira:
		authUrl, err := s.oauthService.AuthorizeURL(provider, userId)
		if err != nil {
			return nil, err
		}
		return &dto.ConnectIntegrationResponse{
			Provider: provider,
			AuthUrl:  authUrl,
		}, nil

	case integrations.ProviderNotion:
		if req == nil || req.AccessToken == "" {
			return nil, errors.New("access_token is required to connect notion")
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		row := &entity.NotionIntegration{
			Id:            uuid.New(),
			UserId:        userId,
			WorkspaceId:   req.WorkspaceId,
			WorkspaceName: req.WorkspaceName,
			AccessToken:   req.AccessToken,
			CreatedAt:     time.Now(),
		}
		if err := uow.IntegrationRepository().UpsertNotion(ctx, row); err != nil {
			return nil, err
		}

		s.afterChange(ctx, userId, provider, events.TypeIntegrationConnected)

		return &dto.ConnectIntegrationResponse{
			Provider: provider,
			Status:   integrations.StatusConnected,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

func (s *integrationService) Disconnect(ctx context.Context, userId uuid.UUID, provider string, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	if !isKnownProvider(provider) {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.IntegrationRepository().DeleteByUser(ctx, provider, userId); err != nil {
		return err
	}

	s.afterChange(ctx, userId, provider, events.TypeIntegrationDisconnected)
	return nil
}

func (s *integrationService) OnOAuthConnected(ctx context.Context, userId uuid.UUID, provider string) {
	s.afterChange(ctx, userId, provider, events.TypeIntegrationConnected)
}

// afterChange runs the shared post-mutation bookkeeping: nudge connected
// clients, record the audit event.
func (s *integrationService) afterChange(ctx context.Context, userId uuid.UUID, provider, eventType string) {
	if s.signalBus != nil {
		refresh := signal.Refresh{
			UserId: userId,
			Kind:   signal.TopicIntegrationsRefresh,
			Data:   map[string]interface{}{"provider": provider},
		}
		if err := s.signalBus.Publish(signal.TopicIntegrationsRefresh, refresh); err != nil {
			s.log.Warn("integration", "failed to publish refresh signal", map[string]interface{}{
				"error":    err.Error(),
				"provider": provider,
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.New(eventType, map[string]interface{}{
			"user_id":  userId,
			"provider": provider,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("integration", "failed to publish audit event", map[string]interface{}{
				"error": err.Error(),
				"type":  eventType,
			})
		}
	}
}

func isKnownProvider(provider string) bool {
	for _, p := range integrations.Providers() {
		if p == provider {
			return true
		}
	}
	return false
}
