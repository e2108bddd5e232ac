package dto

type ConnectIntegrationRequest struct {
	// Notion connects synchronously with a workspace token; OAuth
	// providers ignore these fields and return an authorization URL.
	AccessToken   string `json:"access_token"`
	WorkspaceId   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
}

type ConnectIntegrationResponse struct {
	Provider string `json:"provider"`
	Status   string `json:"status,omitempty"`
	AuthUrl  string `json:"auth_url,omitempty"`
}

type DisconnectIntegrationRequest struct {
	Confirm bool `json:"confirm"`
}
