package prompt

import "encoding/json"

// FallbackMessage is the bot content when the service answers with
// neither matches nor a message.
const FallbackMessage = "Sorry, I couldn't find any information in Slack or Notion."

// HasMatches reports whether the reply carries structured search results.
func (r *Reply) HasMatches() bool {
	if r == nil {
		return false
	}
	return len(r.NotionMatches) > 0 || len(r.SlackMatches) > 0
}

// Content picks the bot transcript content for a reply: the serialized
// payload when matches are present, the plain message otherwise, the
// fixed fallback when both are empty.
func Content(reply *Reply) string {
	if reply == nil {
		return FallbackMessage
	}
	if reply.HasMatches() {
		raw, err := json.Marshal(reply)
		if err != nil {
			return FallbackMessage
		}
		return string(raw)
	}
	if reply.Message != "" {
		return reply.Message
	}
	return FallbackMessage
}
