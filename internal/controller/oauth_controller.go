package controller

import (
	"log"
	"strings"

	"uni-chat-be/internal/pkg/serverutils"
	"uni-chat-be/internal/service"
	"uni-chat-be/pkg/oauthflow"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Authorize(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
	Result(ctx *fiber.Ctx) error
}

type oauthController struct {
	service     service.IOAuthService
	integration service.IIntegrationService
}

func NewOAuthController(oauthService service.IOAuthService, integrationService service.IIntegrationService) IOAuthController {
	return &oauthController{
		service:     oauthService,
		integration: integrationService,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/oauth")
	// Authorize requires a logged-in user; the callback and result come
	// from the browser popup without an Authorization header.
	h.Get("/:provider/authorize", serverutils.JwtMiddleware, c.Authorize)
	h.Get("/:provider/callback", c.Callback)
	h.Get("/result", c.Result)
}

func (c *oauthController) Authorize(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
	}
	provider := ctx.Params("provider")

	url, err := c.service.AuthorizeURL(provider, userId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.SuccessResponse(ctx, "Authorization URL generated", fiber.Map{"auth_url": url})
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	code := ctx.Query("code")
	state := ctx.Query("state")

	log.Printf("[OAuth] Callback received for provider: %s", provider)

	redirectURL := c.service.HandleCallback(ctx.Context(), provider, code, state)

	// The integration tables changed out-of-band from the user's session,
	// so nudge open tabs to refetch.
	if strings.Contains(redirectURL, "success=") {
		if userId, err := uuid.Parse(state); err == nil {
			c.integration.OnOAuthConnected(ctx.Context(), userId, provider)
		}
	}

	return ctx.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

// Result resolves the terminal state of the popup callback page from its
// query parameters.
func (c *oauthController) Result(ctx *fiber.Ctx) error {
	params := map[string]string{
		"success": ctx.Query("success"),
		"error":   ctx.Query("error"),
	}
	outcome := oauthflow.Resolve(params)
	return serverutils.SuccessResponse(ctx, "Callback resolved", outcome)
}
