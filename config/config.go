package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - matrix.go: Matrix connection parameters (required)
//   - notification.go: CheckMK notification context (optional)
type AppConfig struct {
	// Matrix connection parameters. CheckMK passes the parameters
	// configured in the notification rule as NOTIFY_PARAMETER_1..3.
	Matrix MatrixConfig

	// Notification context describing the alert being forwarded.
	Notification NotificationConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Matrix.Sanitize()
	c.Notification.Sanitize()
}
