package sessions

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func row(session uuid.UUID, sender, message string, at time.Time) Row {
	return Row{
		Id:        uuid.New(),
		SessionId: session,
		Sender:    sender,
		Message:   message,
		CreatedAt: at,
	}
}

func TestReconcileOneRepresentativePerSession(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	a := uuid.New()
	b := uuid.New()

	rows := []Row{
		row(a, SenderUser, "first in a", base),
		row(a, SenderBot, "reply in a", base.Add(time.Minute)),
		row(b, SenderUser, "first in b", base.Add(2*time.Minute)),
		row(uuid.Nil, SenderUser, "orphan", base.Add(3*time.Minute)),
	}

	reps := Reconcile(rows)
	if len(reps) != 2 {
		t.Fatalf("expected 2 representatives, got %d", len(reps))
	}
	if reps[0].SessionId != b {
		t.Errorf("expected most recent session first, got %s", reps[0].SessionId)
	}
	if reps[1].SessionId != a {
		t.Errorf("expected older session second, got %s", reps[1].SessionId)
	}
	if reps[1].Message != "reply in a" {
		t.Errorf("expected latest row to represent session a, got %q", reps[1].Message)
	}
}

func TestReconcileEmptyInput(t *testing.T) {
	if got := Reconcile(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestPreviewFirstUserMessageWins(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	session := uuid.New()

	rows := []Row{
		row(session, SenderBot, "greeting from bot", base),
		row(session, SenderUser, "   ", base.Add(time.Second)),
		row(session, SenderUser, "show me the roadmap", base.Add(2*time.Second)),
		row(session, SenderUser, "a later user message", base.Add(3*time.Second)),
	}

	if got := Preview(rows, session); got != "show me the roadmap" {
		t.Errorf("expected first non-blank user message, got %q", got)
	}
}

func TestPreviewTruncation(t *testing.T) {
	session := uuid.New()
	long := strings.Repeat("x", 45)
	exact := strings.Repeat("y", PreviewLimit)

	longRows := []Row{row(session, SenderUser, long, time.Now())}
	if got := Preview(longRows, session); got != strings.Repeat("x", PreviewLimit)+"..." {
		t.Errorf("expected truncated preview, got %q", got)
	}

	exactRows := []Row{row(session, SenderUser, exact, time.Now())}
	if got := Preview(exactRows, session); got != exact {
		t.Errorf("expected %d-rune message untouched, got %q", PreviewLimit, got)
	}
}

func TestPreviewPlaceholderWhenNoUserMessage(t *testing.T) {
	session := uuid.New()
	rows := []Row{
		row(session, SenderBot, "only the bot spoke", time.Now()),
	}
	if got := Preview(rows, session); got != PlaceholderPreview {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestDisplayNamePrefersChatName(t *testing.T) {
	session := uuid.New()
	rep := Row{SessionId: session, ChatName: "Quarterly planning"}
	rows := []Row{row(session, SenderUser, "what changed last sprint", time.Now())}

	if got := DisplayName(rep, rows); got != "Quarterly planning" {
		t.Errorf("expected stored chat name, got %q", got)
	}

	rep.ChatName = "   "
	if got := DisplayName(rep, rows); got != "what changed last sprint" {
		t.Errorf("expected preview fallback, got %q", got)
	}
}
