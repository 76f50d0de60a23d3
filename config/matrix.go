package config

import "strings"

// MatrixConfig contains the Matrix connection parameters.
//
// All three values are required: without any one of them no delivery
// can be attempted, and the plugin must exit with a permanent failure
// so CheckMK does not retry a misconfigured rule.
type MatrixConfig struct {
	// Homeserver is the Matrix server hostname (e.g. "matrix.example.org").
	Homeserver string `env:"NOTIFY_PARAMETER_1,required,notEmpty"`

	// AccessToken is the bot user's access token, sent as a bearer token.
	AccessToken string `env:"NOTIFY_PARAMETER_2,required,notEmpty"`

	// RoomID is the target room (e.g. "!abc123:matrix.example.org").
	RoomID string `env:"NOTIFY_PARAMETER_3,required,notEmpty"`
}

// Sanitize applies guardrails to Matrix configuration values.
func (m *MatrixConfig) Sanitize() {
	m.Homeserver = strings.TrimSpace(m.Homeserver)
	m.AccessToken = strings.TrimSpace(m.AccessToken)
	m.RoomID = strings.TrimSpace(m.RoomID)
}
