package config

import (
	"strings"

	"checkmk-matrix-notify/internal/notify"
)

// NotificationConfig carries the CheckMK notification context.
//
// CheckMK sets NOTIFY_* environment variables describing the alert
// before invoking the plugin. Every field is optional; absent values
// render as empty strings in the built message.
type NotificationConfig struct {
	// What discriminates host from service notifications.
	What string `env:"NOTIFY_WHAT" envDefault:"HOST"`

	// NotificationType is e.g. PROBLEM, RECOVERY, ACKNOWLEDGEMENT.
	NotificationType string `env:"NOTIFY_NOTIFICATIONTYPE"`

	Hostname  string `env:"NOTIFY_HOSTNAME"`
	Site      string `env:"OMD_SITE"`
	Timestamp string `env:"NOTIFY_SHORTDATETIME"`

	// Host notification fields.
	HostState         string `env:"NOTIFY_HOSTSHORTSTATE"`
	PreviousHostState string `env:"NOTIFY_PREVIOUSHOSTHARDSHORTSTATE"`
	HostOutput        string `env:"NOTIFY_HOSTOUTPUT"`

	// Service notification fields.
	ServiceState         string `env:"NOTIFY_SERVICESHORTSTATE"`
	PreviousServiceState string `env:"NOTIFY_PREVIOUSSERVICEHARDSHORTSTATE"`
	ServiceOutput        string `env:"NOTIFY_SERVICEOUTPUT"`
	ServiceName          string `env:"NOTIFY_SERVICEDESC"`
}

// Sanitize normalises the discriminator so host/service selection is
// stable regardless of how the monitoring system cases the value.
func (n *NotificationConfig) Sanitize() {
	n.What = strings.ToUpper(strings.TrimSpace(n.What))
	if n.What == "" {
		n.What = string(notify.KindHost)
	}
}

// Context selects the host or service field set by the What
// discriminator and returns the notification context for the builder.
func (n *NotificationConfig) Context() notify.NotificationContext {
	ctx := notify.NotificationContext{
		Kind:             notify.Kind(n.What),
		NotificationType: n.NotificationType,
		Hostname:         n.Hostname,
		Site:             n.Site,
		Timestamp:        n.Timestamp,
	}

	if ctx.Kind == notify.KindService {
		ctx.State = n.ServiceState
		ctx.PreviousState = n.PreviousServiceState
		ctx.Output = n.ServiceOutput
		ctx.ServiceName = n.ServiceName
		return ctx
	}

	ctx.State = n.HostState
	ctx.PreviousState = n.PreviousHostState
	ctx.Output = n.HostOutput
	return ctx
}
