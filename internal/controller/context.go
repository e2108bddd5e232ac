package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserId reads the authenticated user id set by the JWT
// middleware.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user context")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid user context")
	}
	return userId, nil
}
