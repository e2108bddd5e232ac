package mapper

import (
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/model"
	"uni-chat-be/pkg/sessions"

	"github.com/google/uuid"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(row *model.ChatHistory) *entity.ChatMessage {
	if row == nil {
		return nil
	}

	sessionId := uuid.Nil
	if row.SessionId != nil {
		sessionId = *row.SessionId
	}

	return &entity.ChatMessage{
		Id:        row.Id,
		UserId:    row.UserId,
		SessionId: sessionId,
		ChatName:  row.ChatName,
		Message:   row.Message,
		Sender:    row.Sender,
		CreatedAt: row.CreatedAt,
	}
}

func (m *ChatMapper) ToModel(msg *entity.ChatMessage) *model.ChatHistory {
	if msg == nil {
		return nil
	}

	var sessionId *uuid.UUID
	if msg.SessionId != uuid.Nil {
		id := msg.SessionId
		sessionId = &id
	}

	return &model.ChatHistory{
		Id:        msg.Id,
		UserId:    msg.UserId,
		SessionId: sessionId,
		ChatName:  msg.ChatName,
		Message:   msg.Message,
		Sender:    msg.Sender,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ToEntities(rows []*model.ChatHistory) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(rows))
	for i, row := range rows {
		entities[i] = m.ToEntity(row)
	}
	return entities
}

// ToSessionRows converts entities into the row shape the session
// reconciler folds over.
func (m *ChatMapper) ToSessionRows(msgs []*entity.ChatMessage) []sessions.Row {
	rows := make([]sessions.Row, 0, len(msgs))
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		rows = append(rows, sessions.Row{
			Id:        msg.Id,
			SessionId: msg.SessionId,
			ChatName:  msg.ChatName,
			Message:   msg.Message,
			Sender:    msg.Sender,
			CreatedAt: msg.CreatedAt,
		})
	}
	return rows
}
