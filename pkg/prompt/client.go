// Package prompt is the typed client for the external prompt-answering
// service and the content-selection rule applied to its replies.
package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "http://localhost:8000"

// Client talks to the prompt service.
type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

type promptRequest struct {
	Prompt string `json:"prompt"`
	UserId string `json:"user_id"`
}

// NotionMatch is one Notion page hit in a structured reply.
type NotionMatch struct {
	Title      string `json:"title"`
	Permalink  string `json:"permalink"`
	Summary    string `json:"summary"`
	LastEdited string `json:"last_edited"`
	Status     string `json:"status"`
}

// SlackMatch is one Slack message hit in a structured reply.
type SlackMatch struct {
	Text           string `json:"text"`
	User           string `json:"user"`
	ChannelType    string `json:"channel_type"`
	SlackPermalink string `json:"slack_permalink"`
}

// Reply is the prompt service response. Either Message is set (plain
// answer) or the match lists carry a structured search result.
type Reply struct {
	Message       string        `json:"message,omitempty"`
	Query         string        `json:"query,omitempty"`
	MatchCount    int           `json:"match_count,omitempty"`
	NotionMatches []NotionMatch `json:"notion_matches,omitempty"`
	SlackMatches  []SlackMatch  `json:"slack_matches,omitempty"`
}

// Send posts the user's prompt and decodes the reply.
func (c *Client) Send(ctx context.Context, promptText, userId string) (*Reply, error) {
	body, err := json.Marshal(promptRequest{Prompt: promptText, UserId: userId})
	if err != nil {
		return nil, fmt.Errorf("marshal prompt request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/prompt", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build prompt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call prompt service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prompt service returned status %d", resp.StatusCode)
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode prompt reply: %w", err)
	}
	return &reply, nil
}
