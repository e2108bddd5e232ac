package controller

import (
	"errors"

	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/pkg/serverutils"
	"uni-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIntegrationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Connect(ctx *fiber.Ctx) error
	Disconnect(ctx *fiber.Ctx) error
}

type integrationController struct {
	service service.IIntegrationService
}

func NewIntegrationController(service service.IIntegrationService) IIntegrationController {
	return &integrationController{service: service}
}

func (c *integrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/integrations", serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Post("/:provider/connect", c.Connect)
	h.Post("/:provider/disconnect", c.Disconnect)
}

func (c *integrationController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	force := ctx.QueryBool("force")

	res, err := c.service.List(ctx.Context(), userId, force)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Integrations retrieved", res)
}

func (c *integrationController) Connect(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}
	provider := ctx.Params("provider")

	var req dto.ConnectIntegrationRequest
	// Body is optional for OAuth providers.
	_ = ctx.BodyParser(&req)

	res, err := c.service.Connect(ctx.Context(), userId, provider, &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			return serverutils.ErrorResponse(ctx, fiber.StatusNotFound, err.Error())
		}
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Integration connect initiated", res)
}

func (c *integrationController) Disconnect(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}
	provider := ctx.Params("provider")

	var req dto.DisconnectIntegrationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.service.Disconnect(ctx.Context(), userId, provider, req.Confirm); err != nil {
		switch {
		case errors.Is(err, service.ErrConfirmationRequired):
			return serverutils.ErrorResponse(ctx, fiber.StatusPreconditionRequired, err.Error())
		case errors.Is(err, service.ErrUnknownProvider):
			return serverutils.ErrorResponse(ctx, fiber.StatusNotFound, err.Error())
		default:
			return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
		}
	}
	return serverutils.SuccessResponse(ctx, "Integration disconnected", nil)
}
