// Package sessions derives chat sessions from flat chat_history rows.
// Sessions are never stored; every view of them is a fold over the
// ordered row list.
package sessions

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"

	// PreviewLimit is the maximum preview length before truncation.
	PreviewLimit = 30

	// PlaceholderPreview is shown when a session has no usable user message.
	PlaceholderPreview = "New Search"
)

// Row is a single chat_history row.
type Row struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	ChatName  string    `json:"chat_name"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// Reconcile folds rows into one representative row per session, the row
// with the latest CreatedAt, ordered by that timestamp descending. Rows
// without a session id are orphans and are excluded.
func Reconcile(rows []Row) []Row {
	latest := make(map[uuid.UUID]Row)
	order := make([]uuid.UUID, 0, len(rows))

	for _, row := range rows {
		if row.SessionId == uuid.Nil {
			continue
		}
		current, seen := latest[row.SessionId]
		if !seen {
			latest[row.SessionId] = row
			order = append(order, row.SessionId)
			continue
		}
		if row.CreatedAt.After(current.CreatedAt) {
			latest[row.SessionId] = row
		}
	}

	out := make([]Row, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Preview returns the session's list label: the first user-sent row with
// non-blank text, in fetch order, truncated to PreviewLimit runes. A
// session with no such row gets the placeholder.
func Preview(rows []Row, sessionId uuid.UUID) string {
	for _, row := range rows {
		if row.SessionId != sessionId || row.Sender != SenderUser {
			continue
		}
		if strings.TrimSpace(row.Message) == "" {
			continue
		}
		return truncate(row.Message, PreviewLimit)
	}
	return PlaceholderPreview
}

// DisplayName prefers the stored chat name of the representative row and
// falls back to the derived preview.
func DisplayName(rep Row, rows []Row) string {
	if strings.TrimSpace(rep.ChatName) != "" {
		return rep.ChatName
	}
	return Preview(rows, rep.SessionId)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
