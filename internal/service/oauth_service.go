package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"uni-chat-be/internal/config"
	"uni-chat-be/internal/entity"
	"uni-chat-be/internal/repository/unitofwork"
	"uni-chat-be/pkg/integrations"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	slackAuthorizeURL = "https://slack.com/oauth/v2/authorize"
	slackTokenURL     = "https://slack.com/api/oauth.v2.access"

	jiraAuthorizeURL = "https://auth.atlassian.com/authorize"
	jiraTokenURL     = "https://auth.atlassian.com/oauth/token"
	jiraAPIBaseURL   = "https://api.atlassian.com"

	// user_scope is passed as an extra auth param; the oauth2 package only
	// models the bot-level scope field.
	slackUserScopes = "channels:read,groups:read,im:read,mpim:read,users:read,im:history,groups:history,channels:history,search:read"
)

type IOAuthService interface {
	// AuthorizeURL builds the provider consent URL. The app user id rides
	// in the state parameter so the callback can attribute the tokens.
	AuthorizeURL(provider string, userId uuid.UUID) (string, error)
	// HandleCallback exchanges the code, stores the integration row and
	// returns the frontend URL to redirect the browser to. Failures are
	// encoded in the redirect query, never surfaced as an HTTP error.
	HandleCallback(ctx context.Context, provider, code, state string) string
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	slackConf  *oauth2.Config
	jiraConf   *oauth2.Config
	clientURL  string
	httpClient *http.Client
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config) IOAuthService {
	slackConf := &oauth2.Config{
		ClientID:     cfg.OAuth.Slack.ClientID,
		ClientSecret: cfg.OAuth.Slack.ClientSecret,
		RedirectURL:  cfg.OAuth.Slack.RedirectURL,
		Scopes:       []string{"app_mentions:read", "assistant:write", "files:read", "im:read"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  slackAuthorizeURL,
			TokenURL: slackTokenURL,
		},
	}

	jiraConf := &oauth2.Config{
		ClientID:     cfg.OAuth.Jira.ClientID,
		ClientSecret: cfg.OAuth.Jira.ClientSecret,
		RedirectURL:  cfg.OAuth.Jira.RedirectURL,
		Scopes:       []string{"read:jira-user", "read:jira-work", "write:jira-work", "offline_access"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   jiraAuthorizeURL,
			TokenURL:  jiraTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &oauthService{
		uowFactory: uowFactory,
		slackConf:  slackConf,
		jiraConf:   jiraConf,
		clientURL:  cfg.App.ClientURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *oauthService) AuthorizeURL(provider string, userId uuid.UUID) (string, error) {
	state := userId.String()

	switch provider {
	case integrations.ProviderSlack:
		return s.slackConf.AuthCodeURL(state,
			oauth2.SetAuthURLParam("user_scope", slackUserScopes),
		), nil
	case integrations.ProviderJira:
		return s.jiraConf.AuthCodeURL(state,
			oauth2.SetAuthURLParam("audience", "api.atlassian.com"),
			oauth2.SetAuthURLParam("prompt", "consent"),
		), nil
	default:
		return "", errors.New("unsupported provider")
	}
}

func (s *oauthService) HandleCallback(ctx context.Context, provider, code, state string) string {
	if code == "" {
		return s.redirect("error", "missing_code")
	}
	if state == "" {
		return s.redirect("error", "missing_state")
	}
	userId, err := uuid.Parse(state)
	if err != nil {
		return s.redirect("error", "missing_state")
	}

	switch provider {
	case integrations.ProviderSlack:
		return s.handleSlackCallback(ctx, userId, code)
	case integrations.ProviderJira:
		return s.handleJiraCallback(ctx, userId, code)
	default:
		return s.redirect("error", "unsupported_provider")
	}
}

// slackTokenResponse is the non-standard oauth.v2.access payload. The
// user tokens live under authed_user, not at the top level, which is why
// the exchange bypasses oauth2.Config.Exchange.
type slackTokenResponse struct {
	OK           bool   `json:"ok"`
	Error        string `json:"error"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AuthedUser   struct {
		Id           string `json:"id"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Scope        string `json:"scope"`
		ExpiresIn    int    `json:"expires_in"`
	} `json:"authed_user"`
}

func (s *oauthService) handleSlackCallback(ctx context.Context, userId uuid.UUID, code string) string {
	form := url.Values{
		"client_id":     {s.slackConf.ClientID},
		"client_secret": {s.slackConf.ClientSecret},
		"code":          {code},
		"redirect_uri":  {s.slackConf.RedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, slackTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return s.redirect("error", "token_failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[OAuth Service] Slack token exchange failed: %v", err)
		return s.redirect("error", "token_failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.redirect("error", "token_failed")
	}

	var tokenData slackTokenResponse
	if err := json.Unmarshal(body, &tokenData); err != nil || !tokenData.OK {
		log.Printf("[OAuth Service] Slack rejected the code: %s", tokenData.Error)
		return s.redirect("error", "token_failed")
	}
	if tokenData.AuthedUser.Id == "" {
		return s.redirect("error", "token_failed")
	}

	expiresIn := tokenData.AuthedUser.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 43200
	}
	// 60s buffer so a token is never handed out right at its expiry.
	expiresAt := time.Now().Add(time.Duration(expiresIn-60) * time.Second)

	row := &entity.SlackIntegration{
		Id:               uuid.New(),
		UserId:           userId,
		SlackUserId:      tokenData.AuthedUser.Id,
		BotAccessToken:   tokenData.AccessToken,
		UserAccessToken:  tokenData.AuthedUser.AccessToken,
		BotRefreshToken:  tokenData.RefreshToken,
		UserRefreshToken: tokenData.AuthedUser.RefreshToken,
		Scope:            tokenData.AuthedUser.Scope,
		ExpiresAt:        &expiresAt,
		Raw:              body,
		CreatedAt:        time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.IntegrationRepository().UpsertSlack(ctx, row); err != nil {
		log.Printf("[OAuth Service] Failed to store Slack integration: %v", err)
		return s.redirect("error", "save_failed")
	}

	return s.redirect("success", integrations.ProviderSlack)
}

func (s *oauthService) handleJiraCallback(ctx context.Context, userId uuid.UUID, code string) string {
	token, err := s.jiraConf.Exchange(ctx, code)
	if err != nil {
		log.Printf("[OAuth Service] Jira token exchange failed: %v", err)
		return s.redirect("error", "token_failed")
	}

	cloudId, err := s.jiraCloudId(ctx, token.AccessToken)
	if err != nil {
		log.Printf("[OAuth Service] Jira accessible-resources failed: %v", err)
		return s.redirect("error", "no_cloud_id")
	}

	accountId, err := s.jiraAccountId(ctx, token.AccessToken, cloudId)
	if err != nil {
		log.Printf("[OAuth Service] Jira myself lookup failed: %v", err)
		return s.redirect("error", "save_failed")
	}

	expiresAt := token.Expiry.Add(-60 * time.Second)
	raw, _ := json.Marshal(map[string]interface{}{
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
		"expiry":        token.Expiry,
		"cloud_id":      cloudId,
	})

	row := &entity.JiraIntegration{
		Id:            uuid.New(),
		UserId:        userId,
		JiraAccountId: accountId,
		AccessToken:   token.AccessToken,
		RefreshToken:  token.RefreshToken,
		CloudId:       cloudId,
		ExpiresAt:     &expiresAt,
		Raw:           raw,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.IntegrationRepository().UpsertJira(ctx, row); err != nil {
		log.Printf("[OAuth Service] Failed to store Jira integration: %v", err)
		return s.redirect("error", "save_failed")
	}

	return s.redirect("success", integrations.ProviderJira)
}

// jiraCloudId resolves the Atlassian site id the tokens belong to. The
// first accessible resource wins, matching what the frontend expects.
func (s *oauthService) jiraCloudId(ctx context.Context, accessToken string) (string, error) {
	var resources []struct {
		Id string `json:"id"`
	}
	if err := s.jiraGet(ctx, jiraAPIBaseURL+"/oauth/token/accessible-resources", accessToken, &resources); err != nil {
		return "", err
	}
	if len(resources) == 0 || resources[0].Id == "" {
		return "", errors.New("no accessible resources")
	}
	return resources[0].Id, nil
}

func (s *oauthService) jiraAccountId(ctx context.Context, accessToken, cloudId string) (string, error) {
	var me struct {
		AccountId string `json:"accountId"`
	}
	endpoint := fmt.Sprintf("%s/ex/jira/%s/rest/api/3/myself", jiraAPIBaseURL, cloudId)
	if err := s.jiraGet(ctx, endpoint, accessToken, &me); err != nil {
		return "", err
	}
	if me.AccountId == "" {
		return "", errors.New("missing accountId")
	}
	return me.AccountId, nil
}

func (s *oauthService) jiraGet(ctx context.Context, endpoint, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("atlassian api returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *oauthService) redirect(key, value string) string {
	return fmt.Sprintf("%s/oauth/callback?%s=%s", s.clientURL, key, url.QueryEscape(value))
}
