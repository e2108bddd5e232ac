package controller

import (
	"uni-chat-be/internal/dto"
	"uni-chat-be/internal/pkg/serverutils"
	"uni-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user", serverutils.JwtMiddleware)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Put("/password", c.ChangePassword)
	h.Delete("/", c.DeleteAccount)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusNotFound, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Profile retrieved", res)
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.UpdateProfile(ctx.Context(), userId, &req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Profile updated", nil)
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.ChangePassword(ctx.Context(), userId, &req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Password changed", nil)
}

func (c *userController) DeleteAccount(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}

	if err := c.service.DeleteAccount(ctx.Context(), userId); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Account deleted", nil)
}
