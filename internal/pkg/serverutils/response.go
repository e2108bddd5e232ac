package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct runs validator tags against a request DTO.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func SuccessResponse(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(ctx *fiber.Ctx, code int, message string) error {
	return ctx.Status(code).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// ErrorHandlerMiddleware recovers panics and converts unhandled errors to
// the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ErrorResponse(ctx, fiber.StatusInternalServerError, "Internal server error")
			}
		}()

		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}
		return ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
