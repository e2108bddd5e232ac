// Package oauthflow resolves the terminal state of an OAuth popup
// callback from its redirect query parameters.
package oauthflow

import "fmt"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome is the resolved terminal state shown by the callback page.
type Outcome struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Message  string `json:"message"`
}

var providerNames = map[string]string{
	"slack": "Slack",
	"jira":  "Jira",
}

// Resolve maps callback query parameters to a terminal outcome. A
// recognized success provider wins; an explicit error is reported as-is;
// anything else is an invalid callback.
func Resolve(params map[string]string) Outcome {
	if name, ok := providerNames[params["success"]]; ok {
		return Outcome{
			Status:   StatusSuccess,
			Provider: params["success"],
			Message:  fmt.Sprintf("%s connected!", name),
		}
	}
	if errMsg := params["error"]; errMsg != "" {
		return Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("Connection Failed: %s", errMsg),
		}
	}
	return Outcome{
		Status:  StatusError,
		Message: "Connection Failed: Invalid callback parameters.",
	}
}
