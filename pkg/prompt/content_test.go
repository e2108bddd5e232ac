package prompt

import (
	"encoding/json"
	"testing"
)

func TestContentPlainMessage(t *testing.T) {
	reply := &Reply{Message: "Hi! How can I help you today?"}
	if got := Content(reply); got != reply.Message {
		t.Errorf("expected message passthrough, got %q", got)
	}
}

func TestContentStructuredReplySerialized(t *testing.T) {
	reply := &Reply{
		Query:      "roadmap",
		MatchCount: 1,
		NotionMatches: []NotionMatch{{
			Title:      "Q3 Roadmap",
			Permalink:  "https://notion.so/q3",
			Summary:    "Fetching...",
			LastEdited: "12 June 2025",
			Status:     "In progress",
		}},
	}

	got := Content(reply)
	var decoded Reply
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("content is not valid JSON: %v", err)
	}
	if len(decoded.NotionMatches) != 1 || decoded.NotionMatches[0].Title != "Q3 Roadmap" {
		t.Errorf("structured payload lost in serialization: %q", got)
	}
}

func TestContentMatchesWinOverMessage(t *testing.T) {
	reply := &Reply{
		Message:      "should not be used",
		SlackMatches: []SlackMatch{{Text: "deploy done", User: "ops"}},
	}
	got := Content(reply)
	var decoded Reply
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("expected serialized payload, got %q", got)
	}
	if len(decoded.SlackMatches) != 1 {
		t.Errorf("expected slack match in payload, got %q", got)
	}
}

func TestContentFallback(t *testing.T) {
	if got := Content(&Reply{}); got != FallbackMessage {
		t.Errorf("expected fallback for empty reply, got %q", got)
	}
	if got := Content(nil); got != FallbackMessage {
		t.Errorf("expected fallback for nil reply, got %q", got)
	}
}
