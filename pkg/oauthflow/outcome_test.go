package oauthflow

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		params map[string]string
		want   Outcome
	}{
		{
			name:   "slack success",
			params: map[string]string{"success": "slack"},
			want:   Outcome{Status: StatusSuccess, Provider: "slack", Message: "Slack connected!"},
		},
		{
			name:   "jira success",
			params: map[string]string{"success": "jira"},
			want:   Outcome{Status: StatusSuccess, Provider: "jira", Message: "Jira connected!"},
		},
		{
			name:   "explicit error",
			params: map[string]string{"error": "access_denied"},
			want:   Outcome{Status: StatusError, Message: "Connection Failed: access_denied"},
		},
		{
			name:   "unrecognized success value",
			params: map[string]string{"success": "github"},
			want:   Outcome{Status: StatusError, Message: "Connection Failed: Invalid callback parameters."},
		},
		{
			name:   "no parameters",
			params: map[string]string{},
			want:   Outcome{Status: StatusError, Message: "Connection Failed: Invalid callback parameters."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.params); got != tc.want {
				t.Errorf("Resolve(%v) = %+v, want %+v", tc.params, got, tc.want)
			}
		})
	}
}
