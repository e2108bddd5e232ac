package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/repository/contract"
	"uni-chat-be/internal/repository/unitofwork"
	"uni-chat-be/pkg/integrations"
	"uni-chat-be/pkg/signal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIntegrationRepo is hit from concurrent goroutines, so every field
// access goes through the mutex.
type fakeIntegrationRepo struct {
	mu     sync.Mutex
	slack  *entity.SlackIntegration
	jira   *entity.JiraIntegration
	notion *entity.NotionIntegration

	findHits  int
	deletes   []string
	notionUps int
}

func (r *fakeIntegrationRepo) hits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findHits
}

func (r *fakeIntegrationRepo) setSlack(it *entity.SlackIntegration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slack = it
}

func (r *fakeIntegrationRepo) setNotion(it *entity.NotionIntegration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notion = it
}

func (r *fakeIntegrationRepo) UpsertSlack(ctx context.Context, it *entity.SlackIntegration) error {
	r.setSlack(it)
	return nil
}

func (r *fakeIntegrationRepo) UpsertJira(ctx context.Context, it *entity.JiraIntegration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jira = it
	return nil
}

func (r *fakeIntegrationRepo) UpsertNotion(ctx context.Context, it *entity.NotionIntegration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notion = it
	r.notionUps++
	return nil
}

func (r *fakeIntegrationRepo) FindSlack(ctx context.Context, userId uuid.UUID) (*entity.SlackIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findHits++
	return r.slack, nil
}

func (r *fakeIntegrationRepo) FindJira(ctx context.Context, userId uuid.UUID) (*entity.JiraIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findHits++
	return r.jira, nil
}

func (r *fakeIntegrationRepo) FindNotion(ctx context.Context, userId uuid.UUID) (*entity.NotionIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findHits++
	return r.notion, nil
}

func (r *fakeIntegrationRepo) DeleteByUser(ctx context.Context, provider string, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, provider)
	return nil
}

type fakeIntegrationUow struct {
	repo *fakeIntegrationRepo
}

func (u *fakeIntegrationUow) Begin(ctx context.Context) error { return nil }
func (u *fakeIntegrationUow) Commit() error                   { return nil }
func (u *fakeIntegrationUow) Rollback() error                 { return nil }

func (u *fakeIntegrationUow) UserRepository() contract.UserRepository               { return nil }
func (u *fakeIntegrationUow) ChatHistoryRepository() contract.ChatHistoryRepository { return nil }
func (u *fakeIntegrationUow) IntegrationRepository() contract.IntegrationRepository { return u.repo }

type fakeIntegrationFactory struct {
	uow *fakeIntegrationUow
}

func (f *fakeIntegrationFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubOAuthService struct{}

func (stubOAuthService) AuthorizeURL(provider string, userId uuid.UUID) (string, error) {
	return "https://example.com/authorize?state=" + userId.String(), nil
}

func (stubOAuthService) HandleCallback(ctx context.Context, provider, code, state string) string {
	return ""
}

func newIntegrationFixture(t *testing.T) (IIntegrationService, *fakeIntegrationRepo) {
	t.Helper()

	repo := &fakeIntegrationRepo{}
	factory := &fakeIntegrationFactory{uow: &fakeIntegrationUow{repo: repo}}

	bus := signal.NewBus()
	t.Cleanup(func() { bus.Close() })

	svc := NewIntegrationService(factory, stubOAuthService{}, bus, nil, noopLogger{})
	return svc, repo
}

func TestListMergesCatalogWithConnections(t *testing.T) {
	svc, repo := newIntegrationFixture(t)
	repo.setNotion(&entity.NotionIntegration{
		Id:        uuid.New(),
		CreatedAt: time.Now(),
	})

	views, err := svc.List(context.Background(), uuid.New(), false)
	require.NoError(t, err)
	require.Len(t, views, 3)

	byId := make(map[string]integrations.View)
	for _, v := range views {
		byId[v.Id] = v
	}
	assert.Equal(t, integrations.StatusConnected, byId[integrations.ProviderNotion].Status)
	assert.Equal(t, integrations.StatusAvailable, byId[integrations.ProviderSlack].Status)
	assert.Equal(t, integrations.StatusAvailable, byId[integrations.ProviderJira].Status)
}

func TestListAlwaysReadsConnectionStateFresh(t *testing.T) {
	svc, repo := newIntegrationFixture(t)
	userId := uuid.New()

	views, err := svc.List(context.Background(), userId, false)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.hits())
	for _, v := range views {
		assert.Equal(t, integrations.StatusAvailable, v.Status)
	}

	// A connection made elsewhere (another instance's OAuth callback)
	// shows up on the next load without a force flag.
	repo.setSlack(&entity.SlackIntegration{Id: uuid.New(), CreatedAt: time.Now()})

	views, err = svc.List(context.Background(), userId, false)
	require.NoError(t, err)
	assert.Equal(t, 6, repo.hits())
	for _, v := range views {
		if v.Id == integrations.ProviderSlack {
			assert.Equal(t, integrations.StatusConnected, v.Status)
		}
	}
}

func TestConnectOAuthProviderReturnsAuthUrl(t *testing.T) {
	svc, repo := newIntegrationFixture(t)

	res, err := svc.Connect(context.Background(), uuid.New(), integrations.ProviderSlack, &dto.ConnectIntegrationRequest{})
	require.NoError(t, err)

	assert.Equal(t, integrations.ProviderSlack, res.Provider)
	assert.Contains(t, res.AuthUrl, "https://example.com/authorize")
	assert.Nil(t, repo.slack)
}

func TestConnectNotionStoresWorkspaceToken(t *testing.T) {
	svc, repo := newIntegrationFixture(t)
	userId := uuid.New()

	res, err := svc.Connect(context.Background(), userId, integrations.ProviderNotion, &dto.ConnectIntegrationRequest{
		AccessToken:   "secret_token",
		WorkspaceId:   "ws-1",
		WorkspaceName: "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, integrations.StatusConnected, res.Status)
	require.NotNil(t, repo.notion)
	assert.Equal(t, userId, repo.notion.UserId)
	assert.Equal(t, "secret_token", repo.notion.AccessToken)
}

func TestConnectNotionRequiresToken(t *testing.T) {
	svc, repo := newIntegrationFixture(t)

	_, err := svc.Connect(context.Background(), uuid.New(), integrations.ProviderNotion, &dto.ConnectIntegrationRequest{})
	assert.Error(t, err)
	assert.Zero(t, repo.notionUps)
}

func TestConnectUnknownProvider(t *testing.T) {
	svc, _ := newIntegrationFixture(t)

	_, err := svc.Connect(context.Background(), uuid.New(), "github", &dto.ConnectIntegrationRequest{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestDisconnectRequiresConfirmation(t *testing.T) {
	svc, repo := newIntegrationFixture(t)

	err := svc.Disconnect(context.Background(), uuid.New(), integrations.ProviderSlack, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, repo.deletes)

	err = svc.Disconnect(context.Background(), uuid.New(), integrations.ProviderSlack, true)
	require.NoError(t, err)
	assert.Equal(t, []string{integrations.ProviderSlack}, repo.deletes)
}

func TestDisconnectShowsInNextList(t *testing.T) {
	svc, repo := newIntegrationFixture(t)
	userId := uuid.New()
	repo.setSlack(&entity.SlackIntegration{Id: uuid.New(), CreatedAt: time.Now()})

	views, err := svc.List(context.Background(), userId, false)
	require.NoError(t, err)
	for _, v := range views {
		if v.Id == integrations.ProviderSlack {
			assert.Equal(t, integrations.StatusConnected, v.Status)
		}
	}

	repo.setSlack(nil)
	require.NoError(t, svc.Disconnect(context.Background(), userId, integrations.ProviderSlack, true))

	views, err = svc.List(context.Background(), userId, false)
	require.NoError(t, err)
	for _, v := range views {
		if v.Id == integrations.ProviderSlack {
			assert.Equal(t, integrations.StatusAvailable, v.Status)
		}
	}
}
