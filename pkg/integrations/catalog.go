// Package integrations holds the static integration catalog and the pure
// reducer that merges it with a user's stored connections.
package integrations

import "time"

const (
	ProviderSlack  = "slack"
	ProviderNotion = "notion"
	ProviderJira   = "jira"

	StatusConnected = "connected"
	StatusAvailable = "available"
)

// Entry is one catalog item. The catalog is hardcoded; connection rows
// only ever flip an entry's status.
type Entry struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	OAuth       bool   `json:"oauth"`
}

// Connection is a stored per-user provider connection.
type Connection struct {
	Provider    string    `json:"provider"`
	ConnectedAt time.Time `json:"connected_at"`
}

// View is a catalog entry annotated with the user's connection state.
type View struct {
	Entry
	Status      string     `json:"status"`
	ConnectedAt *time.Time `json:"connectedAt,omitempty"`
}

// Catalog returns the available integrations in display order.
func Catalog() []Entry {
	return []Entry{
		{
			Id:          ProviderSlack,
			Name:        "Slack",
			Description: "Connect your Slack workspace to search messages and channels",
			Icon:        "/logos/slack_logo.png",
			Color:       "bg-purple-100",
			OAuth:       true,
		},
		{
			Id:          ProviderNotion,
			Name:        "Notion",
			Description: "Connect your Notion workspace to search pages and databases",
			Icon:        "/logos/notion_logo.png",
			Color:       "bg-gray-100",
			OAuth:       false,
		},
		{
			Id:          ProviderJira,
			Name:        "Jira",
			Description: "Connect your Jira workspace to search issues and projects",
			Icon:        "/logos/jira_logo.png",
			Color:       "bg-blue-100",
			OAuth:       true,
		},
	}
}

// Providers returns the provider ids in connection-check order.
func Providers() []string {
	return []string{ProviderNotion, ProviderSlack, ProviderJira}
}

// IsOAuth reports whether the provider connects through an OAuth popup.
func IsOAuth(provider string) bool {
	for _, entry := range Catalog() {
		if entry.Id == provider {
			return entry.OAuth
		}
	}
	return false
}
