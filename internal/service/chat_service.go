package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uni-chat-be/internal/constant"
	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/mapper"
	"uni-chat-be/internal/pkg/logger"
	"uni-chat-be/internal/repository/specification"
	"uni-chat-be/internal/repository/unitofwork"
	"uni-chat-be/pkg/events"
	pktNats "uni-chat-be/pkg/nats"
	"uni-chat-be/pkg/prompt"
	"uni-chat-be/pkg/sessions"
	"uni-chat-be/pkg/signal"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var (
	// ErrReplyPending rejects a send into a session whose previous reply
	// has not arrived yet.
	ErrReplyPending = errors.New("a reply is still pending for this session")

	// ErrConfirmationRequired guards destructive operations.
	ErrConfirmationRequired = errors.New("confirmation required")

	ErrEmptyMessage     = errors.New("message must not be empty")
	ErrSessionIdMissing = errors.New("session_id is required for all chat messages")
)

type IChatService interface {
	GetHistory(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID) ([]*dto.ChatMessageResponse, error)
	SaveMessage(ctx context.Context, userId uuid.UUID, req *dto.SaveMessageRequest) (*dto.ChatMessageResponse, error)
	Send(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error)
	RenameSession(ctx context.Context, userId, sessionId uuid.UUID, req *dto.RenameSessionRequest) error
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID, confirm bool) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	promptClient   *prompt.Client
	signalBus      *signal.Bus
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	chatMapper     *mapper.ChatMapper

	// inflight tracks sessions with a pending reply. Entries expire as a
	// safety net in case a crash skips the explicit delete.
	inflight *gocache.Cache
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	promptClient *prompt.Client,
	signalBus *signal.Bus,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		promptClient:   promptClient,
		signalBus:      signalBus,
		eventPublisher: eventPublisher,
		log:            log,
		chatMapper:     mapper.NewChatMapper(),
		inflight:       gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	}
	if sessionId != nil {
		specs = append(specs, specification.BySessionID{SessionID: *sessionId})
	}

	rows, err := uow.ChatHistoryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatMessageResponse, len(rows))
	for i, row := range rows {
		out[i] = toMessageResponse(row)
	}
	return out, nil
}

func (s *chatService) SaveMessage(ctx context.Context, userId uuid.UUID, req *dto.SaveMessageRequest) (*dto.ChatMessageResponse, error) {
	if req.SessionId == uuid.Nil {
		return nil, ErrSessionIdMissing
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: req.SessionId,
		Message:   req.Message,
		Sender:    req.Sender,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatHistoryRepository().Create(ctx, msg); err != nil {
		return nil, err
	}
	return toMessageResponse(msg), nil
}

func (s *chatService) Send(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	// A missing session id means a fresh conversation; the new id exists
	// before any row is written so both rows land under it.
	sessionId := uuid.New()
	if req.SessionId != nil && *req.SessionId != uuid.Nil {
		sessionId = *req.SessionId
	}

	inflightKey := sessionId.String()
	if _, pending := s.inflight.Get(inflightKey); pending {
		return nil, ErrReplyPending
	}
	s.inflight.SetDefault(inflightKey, userId)
	defer s.inflight.Delete(inflightKey)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ChatHistoryRepository()

	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Message:   req.Message,
		Sender:    constant.ChatSenderUser,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	// Sidebar refresh goes out as soon as the user row exists, without
	// waiting for the reply.
	s.publishRefresh(userId, signal.TopicChatRefresh, map[string]interface{}{
		"session_id": sessionId,
	})

	reply, err := s.promptClient.Send(ctx, text, userId.String())
	if err != nil {
		s.log.Error("chat", "prompt service call failed", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionId,
		})
		// The error entry lives only in the response, not in chat_history.
		errMsg := &entity.ChatMessage{
			Id:        uuid.New(),
			UserId:    userId,
			SessionId: sessionId,
			Message:   constant.ChatErrorReply,
			Sender:    constant.ChatSenderBot,
			CreatedAt: time.Now(),
		}
		return &dto.SendChatResponse{
			SessionId: sessionId,
			Sent:      toMessageResponse(userMsg),
			Reply:     toMessageResponse(errMsg),
			Persisted: false,
		}, nil
	}

	botMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Message:   prompt.Content(reply),
		Sender:    constant.ChatSenderBot,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, botMsg); err != nil {
		return nil, err
	}

	s.publishRefresh(userId, signal.TopicChatRefresh, map[string]interface{}{
		"session_id": sessionId,
	})

	return &dto.SendChatResponse{
		SessionId: sessionId,
		Sent:      toMessageResponse(userMsg),
		Reply:     toMessageResponse(botMsg),
		Persisted: true,
	}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msgs, err := uow.ChatHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	rows := s.chatMapper.ToSessionRows(msgs)
	reps := sessions.Reconcile(rows)
	out := make([]*dto.SessionSummaryResponse, len(reps))
	for i, rep := range reps {
		out[i] = &dto.SessionSummaryResponse{
			Id:           rep.SessionId,
			Name:         sessions.DisplayName(rep, rows),
			Preview:      sessions.Preview(rows, rep.SessionId),
			LastActivity: rep.CreatedAt,
		}
	}
	return out, nil
}

func (s *chatService) RenameSession(ctx context.Context, userId, sessionId uuid.UUID, req *dto.RenameSessionRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ChatHistoryRepository()

	existing, err := repo.FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySessionID{SessionID: sessionId},
	)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("session not found")
	}
	if existing.ChatName == name {
		return nil
	}

	if err := repo.RenameSession(ctx, userId, sessionId, name); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeSessionRenamed, map[string]interface{}{
		"user_id":    userId,
		"session_id": sessionId,
		"name":       name,
	})
	s.publishRefresh(userId, signal.TopicChatRefresh, map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatHistoryRepository().DeleteSession(ctx, userId, sessionId); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeSessionDeleted, map[string]interface{}{
		"user_id":    userId,
		"session_id": sessionId,
	})
	s.publishRefresh(userId, signal.TopicChatRefresh, map[string]interface{}{
		"session_id": sessionId,
		"deleted":    true,
	})
	return nil
}

func (s *chatService) publishRefresh(userId uuid.UUID, topic string, data map[string]interface{}) {
	if s.signalBus == nil {
		return
	}
	if err := s.signalBus.Publish(topic, signal.Refresh{UserId: userId, Kind: topic, Data: data}); err != nil {
		s.log.Warn("chat", "failed to publish refresh signal", map[string]interface{}{
			"error": err.Error(),
			"topic": topic,
		})
	}
}

func (s *chatService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.log.Warn("chat", "failed to publish event", map[string]interface{}{
			"error": err.Error(),
			"event": eventType,
		})
	}
}

func toMessageResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		ChatName:  msg.ChatName,
		Message:   msg.Message,
		Sender:    msg.Sender,
		CreatedAt: msg.CreatedAt,
	}
}
