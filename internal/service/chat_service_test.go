package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uni-chat-be/internal/constant"
	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/repository/contract"
	"uni-chat-be/internal/repository/specification"
	"uni-chat-be/internal/repository/unitofwork"
	"uni-chat-be/pkg/prompt"
	"uni-chat-be/pkg/signal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeChatRepo struct {
	created     []*entity.ChatMessage
	rows        []*entity.ChatMessage
	findOneHits int
	renames     []string
	deletes     []uuid.UUID
}

func (r *fakeChatRepo) Create(ctx context.Context, msg *entity.ChatMessage) error {
	r.created = append(r.created, msg)
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	r.findOneHits++
	if len(r.rows) == 0 {
		return nil, nil
	}
	return r.rows[0], nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.rows, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeChatRepo) RenameSession(ctx context.Context, userId, sessionId uuid.UUID, name string) error {
	r.renames = append(r.renames, name)
	return nil
}

func (r *fakeChatRepo) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	r.deletes = append(r.deletes, sessionId)
	return nil
}

type fakeUow struct {
	chatRepo *fakeChatRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository               { return nil }
func (u *fakeUow) ChatHistoryRepository() contract.ChatHistoryRepository { return u.chatRepo }
func (u *fakeUow) IntegrationRepository() contract.IntegrationRepository { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newChatFixture(t *testing.T, promptHandler http.HandlerFunc) (IChatService, *fakeChatRepo) {
	t.Helper()

	repo := &fakeChatRepo{}
	factory := &fakeFactory{uow: &fakeUow{chatRepo: repo}}

	var client *prompt.Client
	if promptHandler != nil {
		srv := httptest.NewServer(promptHandler)
		t.Cleanup(srv.Close)
		client = prompt.NewClient(srv.URL)
	} else {
		client = prompt.NewClient("http://127.0.0.1:0")
	}

	bus := signal.NewBus()
	t.Cleanup(func() { bus.Close() })

	svc := NewChatService(factory, client, bus, nil, noopLogger{})
	return svc, repo
}

func TestSendAllocatesSessionAndPersistsBothRows(t *testing.T) {
	svc, repo := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Here is what I found."}`))
	})

	userId := uuid.New()
	res, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{Message: "find the roadmap"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.SessionId)
	assert.True(t, res.Persisted)
	assert.Equal(t, "Here is what I found.", res.Reply.Message)

	require.Len(t, repo.created, 2)
	assert.Equal(t, constant.ChatSenderUser, repo.created[0].Sender)
	assert.Equal(t, constant.ChatSenderBot, repo.created[1].Sender)
	assert.Equal(t, res.SessionId, repo.created[0].SessionId)
	assert.Equal(t, res.SessionId, repo.created[1].SessionId)
}

func TestSendKeepsProvidedSessionId(t *testing.T) {
	svc, repo := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	})

	sessionId := uuid.New()
	res, err := svc.Send(context.Background(), uuid.New(), &dto.SendChatRequest{
		SessionId: &sessionId,
		Message:   "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, sessionId, res.SessionId)
	require.Len(t, repo.created, 2)
	assert.Equal(t, sessionId, repo.created[0].SessionId)
}

func TestSendPromptFailureReturnsEphemeralReply(t *testing.T) {
	svc, repo := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	res, err := svc.Send(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Equal(t, constant.ChatErrorReply, res.Reply.Message)
	// Only the user row reached storage.
	require.Len(t, repo.created, 1)
	assert.Equal(t, constant.ChatSenderUser, repo.created[0].Sender)
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	svc, repo := newChatFixture(t, nil)

	_, err := svc.Send(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, repo.created)
}

func TestSaveMessageRequiresSessionId(t *testing.T) {
	svc, repo := newChatFixture(t, nil)

	_, err := svc.SaveMessage(context.Background(), uuid.New(), &dto.SaveMessageRequest{
		Message: "hello",
		Sender:  constant.ChatSenderUser,
	})
	assert.ErrorIs(t, err, ErrSessionIdMissing)
	assert.Empty(t, repo.created)
}

func TestRenameSessionBlankNameIsNoOp(t *testing.T) {
	svc, repo := newChatFixture(t, nil)

	err := svc.RenameSession(context.Background(), uuid.New(), uuid.New(), &dto.RenameSessionRequest{Name: "   "})
	require.NoError(t, err)

	assert.Zero(t, repo.findOneHits)
	assert.Empty(t, repo.renames)
}

func TestRenameSessionUnchangedNameIsNoOp(t *testing.T) {
	svc, repo := newChatFixture(t, nil)
	repo.rows = []*entity.ChatMessage{{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		ChatName:  "Roadmap",
	}}

	err := svc.RenameSession(context.Background(), uuid.New(), repo.rows[0].SessionId, &dto.RenameSessionRequest{Name: "Roadmap"})
	require.NoError(t, err)

	assert.Empty(t, repo.renames)
}

func TestRenameSessionWritesTrimmedName(t *testing.T) {
	svc, repo := newChatFixture(t, nil)
	repo.rows = []*entity.ChatMessage{{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		ChatName:  "Old name",
	}}

	err := svc.RenameSession(context.Background(), uuid.New(), repo.rows[0].SessionId, &dto.RenameSessionRequest{Name: "  New name  "})
	require.NoError(t, err)

	require.Len(t, repo.renames, 1)
	assert.Equal(t, "New name", repo.renames[0])
}

func TestListSessionsNewestFirst(t *testing.T) {
	svc, repo := newChatFixture(t, nil)

	older := uuid.New()
	newer := uuid.New()
	base := time.Now().Add(-time.Hour)
	repo.rows = []*entity.ChatMessage{
		{Id: uuid.New(), SessionId: older, Message: "first question", Sender: constant.ChatSenderUser, CreatedAt: base},
		{Id: uuid.New(), SessionId: older, Message: "answer", Sender: constant.ChatSenderBot, CreatedAt: base.Add(time.Minute)},
		{Id: uuid.New(), SessionId: newer, Message: "second question", Sender: constant.ChatSenderUser, CreatedAt: base.Add(2 * time.Minute)},
	}

	res, err := svc.ListSessions(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, newer, res[0].Id)
	assert.Equal(t, older, res[1].Id)
	assert.Equal(t, "second question", res[0].Preview)
	assert.Equal(t, "first question", res[1].Preview)
}

func TestDeleteSessionRequiresConfirmation(t *testing.T) {
	svc, repo := newChatFixture(t, nil)

	err := svc.DeleteSession(context.Background(), uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, repo.deletes)

	sessionId := uuid.New()
	err = svc.DeleteSession(context.Background(), uuid.New(), sessionId, true)
	require.NoError(t, err)
	require.Len(t, repo.deletes, 1)
	assert.Equal(t, sessionId, repo.deletes[0])
}
