package notify

import "strings"

// stateEmojis maps CheckMK short state codes to a visual indicator.
// Lookup is exact-match on the raw state string; unmapped states fall
// back to defaultEmoji.
var stateEmojis = map[string]string{
	"OK":      "✅",
	"UP":      "✅",
	"WARN":    "⚠️",
	"CRIT":    "🚨",
	"DOWN":    "🚨",
	"UNKNOWN": "❔",
}

const defaultEmoji = "ℹ️"

func stateEmoji(state string) string {
	if emoji, ok := stateEmojis[state]; ok {
		return emoji
	}
	return defaultEmoji
}

// Build renders the plain-text and HTML message bodies for a
// notification. It is total: absent fields render as empty strings in
// place, and there is no failure path.
func Build(ctx NotificationContext) Message {
	emoji := stateEmoji(ctx.State)
	isService := ctx.Kind == KindService

	plain := strings.Builder{}
	plain.WriteString(emoji)
	plain.WriteString(" ")
	plain.WriteString(string(ctx.Kind))
	plain.WriteString(" ")
	plain.WriteString(ctx.NotificationType)
	plain.WriteString(": ")
	plain.WriteString(ctx.Hostname)
	if isService {
		plain.WriteString("\nService: ")
		plain.WriteString(ctx.ServiceName)
	}
	plain.WriteString("\nState: ")
	plain.WriteString(ctx.PreviousState)
	plain.WriteString(" → ")
	plain.WriteString(ctx.State)
	plain.WriteString("\nOutput: ")
	plain.WriteString(ctx.Output)

	// Matrix HTML bodies use <br> line breaks, never literal newlines.
	htmlLines := []string{
		"<p><b>" + emoji + " " + string(ctx.Kind) + " " + ctx.NotificationType + "</b></p>",
		"<b>Host:</b> " + ctx.Hostname,
	}
	if isService {
		htmlLines = append(htmlLines, "<b>Service:</b> "+ctx.ServiceName)
	}
	htmlLines = append(htmlLines,
		"<b>State:</b> "+ctx.PreviousState+" &rarr; <b>"+ctx.State+"</b>",
		"<b>Output:</b> <code>"+ctx.Output+"</code>",
		"<p><small>Site: "+ctx.Site+" | "+ctx.Timestamp+"</small></p>",
	)

	return Message{
		PlainText: plain.String(),
		HTMLText:  strings.Join(htmlLines, "<br>"),
	}
}
