package notify

// Kind discriminates host from service notifications.
type Kind string

// Notification kinds as CheckMK reports them in NOTIFY_WHAT.
const (
	KindHost    Kind = "HOST"
	KindService Kind = "SERVICE"
)

// NotificationContext captures the alert data for a single invocation.
// It is constructed once from the environment, never mutated, and
// discarded after the message is built.
type NotificationContext struct {
	Kind             Kind
	NotificationType string
	Hostname         string
	Site             string
	Timestamp        string
	State            string
	PreviousState    string
	Output           string
	// ServiceName is set only for service notifications.
	ServiceName string
}

// Message is the dual-body rendering of a notification. Both bodies
// carry the same content; HTMLText is strictly an enriched rendering
// of PlainText.
type Message struct {
	PlainText string
	HTMLText  string
}
