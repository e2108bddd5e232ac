package service

import (
	"context"
	"testing"

	"uni-chat-be/internal/config"
	"uni-chat-be/pkg/integrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthFixture() IOAuthService {
	cfg := &config.Config{}
	cfg.App.ClientURL = "http://localhost:5173"
	cfg.OAuth.Slack = config.OAuthProviderConfig{
		ClientID:     "slack-client",
		ClientSecret: "slack-secret",
		RedirectURL:  "http://localhost:3000/api/oauth/slack/callback",
	}
	cfg.OAuth.Jira = config.OAuthProviderConfig{
		ClientID:     "jira-client",
		ClientSecret: "jira-secret",
		RedirectURL:  "http://localhost:3000/api/oauth/jira/callback",
	}
	return NewOAuthService(nil, cfg)
}

func TestAuthorizeURLSlack(t *testing.T) {
	svc := newOAuthFixture()
	userId := uuid.New()

	url, err := svc.AuthorizeURL(integrations.ProviderSlack, userId)
	require.NoError(t, err)

	assert.Contains(t, url, "https://slack.com/oauth/v2/authorize")
	assert.Contains(t, url, "client_id=slack-client")
	assert.Contains(t, url, "user_scope=")
	assert.Contains(t, url, "state="+userId.String())
}

func TestAuthorizeURLJira(t *testing.T) {
	svc := newOAuthFixture()
	userId := uuid.New()

	url, err := svc.AuthorizeURL(integrations.ProviderJira, userId)
	require.NoError(t, err)

	assert.Contains(t, url, "https://auth.atlassian.com/authorize")
	assert.Contains(t, url, "audience=api.atlassian.com")
	assert.Contains(t, url, "prompt=consent")
	assert.Contains(t, url, "state="+userId.String())
}

func TestAuthorizeURLUnsupportedProvider(t *testing.T) {
	svc := newOAuthFixture()

	_, err := svc.AuthorizeURL("github", uuid.New())
	assert.Error(t, err)
}

func TestHandleCallbackRejectsMissingParams(t *testing.T) {
	svc := newOAuthFixture()
	ctx := context.Background()

	redirect := svc.HandleCallback(ctx, integrations.ProviderSlack, "", uuid.New().String())
	assert.Equal(t, "http://localhost:5173/oauth/callback?error=missing_code", redirect)

	redirect = svc.HandleCallback(ctx, integrations.ProviderSlack, "code123", "")
	assert.Equal(t, "http://localhost:5173/oauth/callback?error=missing_state", redirect)

	redirect = svc.HandleCallback(ctx, integrations.ProviderSlack, "code123", "not-a-uuid")
	assert.Equal(t, "http://localhost:5173/oauth/callback?error=missing_state", redirect)

	redirect = svc.HandleCallback(ctx, "github", "code123", uuid.New().String())
	assert.Equal(t, "http://localhost:5173/oauth/callback?error=unsupported_provider", redirect)
}
