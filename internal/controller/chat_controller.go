package controller

import (
	"errors"

	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/pkg/serverutils"
	"uni-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetHistory(ctx *fiber.Ctx) error
	SaveMessage(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat", serverutils.JwtMiddleware)
	h.Get("/history", c.GetHistory)
	h.Post("/history", c.SaveMessage)
	h.Post("/send", c.Send)
	h.Get("/sessions", c.ListSessions)
	h.Put("/sessions/:sessionId", c.RenameSession)
	h.Delete("/sessions/:sessionId", c.DeleteSession)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var sessionId *uuid.UUID
	if raw := ctx.Query("session_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid session_id")
		}
		sessionId = &parsed
	}

	res, err := c.service.GetHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "History retrieved", res)
}

func (c *chatController) SaveMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.SaveMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SaveMessage(ctx.Context(), userId, &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Message saved", res)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Send(ctx.Context(), userId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReplyPending):
			return serverutils.ErrorResponse(ctx, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrEmptyMessage):
			return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
		default:
			return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
		}
	}
	return serverutils.SuccessResponse(ctx, "Message sent", res)
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	res, err := c.service.ListSessions(ctx.Context(), userId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Sessions retrieved", res)
}

func (c *chatController) RenameSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.service.RenameSession(ctx.Context(), userId, sessionId, &req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Session renamed", nil)
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.DeleteSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.service.DeleteSession(ctx.Context(), userId, sessionId, req.Confirm); err != nil {
		if errors.Is(err, service.ErrConfirmationRequired) {
			return serverutils.ErrorResponse(ctx, fiber.StatusPreconditionRequired, err.Error())
		}
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Session deleted", nil)
}
