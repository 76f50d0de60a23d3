package notify

import (
	"strings"
	"testing"
)

func TestStateEmojiSelection(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"OK", "✅"},
		{"UP", "✅"},
		{"WARN", "⚠️"},
		{"CRIT", "🚨"},
		{"DOWN", "🚨"},
		{"UNKNOWN", "❔"},
		{"frobnicate", "ℹ️"},
		{"ok", "ℹ️"}, // lookup is case-sensitive
		{"", "ℹ️"},
	}

	for _, tt := range tests {
		if got := stateEmoji(tt.state); got != tt.want {
			t.Errorf("stateEmoji(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestBuildHostNotification(t *testing.T) {
	msg := Build(NotificationContext{
		Kind:             KindHost,
		NotificationType: "PROBLEM",
		Hostname:         "web01",
		Site:             "prod",
		Timestamp:        "2026-08-27 10:15:00",
		State:            "DOWN",
		PreviousState:    "UP",
		Output:           "CRITICAL - ping timed out",
	})

	if msg.PlainText == "" || msg.HTMLText == "" {
		t.Fatal("expected non-empty plain and html bodies")
	}

	wantPlain := "🚨 HOST PROBLEM: web01\nState: UP → DOWN\nOutput: CRITICAL - ping timed out"
	if msg.PlainText != wantPlain {
		t.Fatalf("plain text mismatch:\ngot:  %q\nwant: %q", msg.PlainText, wantPlain)
	}

	if strings.Contains(msg.PlainText, "Service:") {
		t.Fatal("host notification must not carry a Service line")
	}
	if strings.Contains(msg.HTMLText, "<b>Service:</b>") {
		t.Fatal("host notification must not carry a Service line in html")
	}

	for _, want := range []string{
		"<p><b>🚨 HOST PROBLEM</b></p>",
		"<b>Host:</b> web01",
		"<b>State:</b> UP &rarr; <b>DOWN</b>",
		"<b>Output:</b> <code>CRITICAL - ping timed out</code>",
		"<p><small>Site: prod | 2026-08-27 10:15:00</small></p>",
	} {
		if !strings.Contains(msg.HTMLText, want) {
			t.Errorf("html body missing %q: %s", want, msg.HTMLText)
		}
	}

	if strings.Contains(msg.HTMLText, "\n") {
		t.Fatal("html body must use <br>, not literal newlines")
	}
}

func TestBuildServiceNotification(t *testing.T) {
	msg := Build(NotificationContext{
		Kind:             KindService,
		NotificationType: "RECOVERY",
		Hostname:         "db02",
		State:            "OK",
		PreviousState:    "CRIT",
		Output:           "OK - 12ms response time",
		ServiceName:      "PostgreSQL Connections",
	})

	if !strings.Contains(msg.PlainText, "Service: PostgreSQL Connections") {
		t.Fatalf("expected Service line in plain text: %s", msg.PlainText)
	}
	if !strings.Contains(msg.HTMLText, "<b>Service:</b> PostgreSQL Connections") {
		t.Fatalf("expected Service line in html: %s", msg.HTMLText)
	}
	if !strings.HasPrefix(msg.PlainText, "✅ SERVICE RECOVERY: db02") {
		t.Fatalf("unexpected plain header: %s", msg.PlainText)
	}
}

func TestBuildCarriesTransitionAndOutputVerbatim(t *testing.T) {
	ctx := NotificationContext{
		Kind:          KindHost,
		State:         "WARN",
		PreviousState: "OK",
		Output:        "load average 7.31 > 7.00 (!)",
	}
	msg := Build(ctx)

	for name, body := range map[string]string{"plain": msg.PlainText, "html": msg.HTMLText} {
		if !strings.Contains(body, ctx.Output) {
			t.Errorf("%s body missing verbatim output: %s", name, body)
		}
		if !strings.Contains(body, "OK") || !strings.Contains(body, "WARN") {
			t.Errorf("%s body missing state transition: %s", name, body)
		}
	}
}

func TestBuildIsTotalOnEmptyContext(t *testing.T) {
	msg := Build(NotificationContext{})

	if msg.PlainText == "" || msg.HTMLText == "" {
		t.Fatal("expected non-empty bodies even for an empty context")
	}
	if strings.Contains(msg.PlainText, "unknown") || strings.Contains(msg.HTMLText, "unknown") {
		t.Fatal("absent fields must render as empty strings, not placeholders")
	}
	if !strings.Contains(msg.PlainText, "State:  → ") {
		t.Fatalf("expected empty transition rendered in place: %q", msg.PlainText)
	}
}
