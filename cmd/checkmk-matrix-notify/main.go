package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"checkmk-matrix-notify/config"
	"checkmk-matrix-notify/internal/bootstrap"
	"checkmk-matrix-notify/internal/notify"
	"checkmk-matrix-notify/internal/notify/matrix"
)

// Exit codes CheckMK understands.
const (
	exitSuccess = 0
	exitRetry   = 1 // CheckMK will retry the notification
	exitFailed  = 2 // CheckMK will not retry
)

type runDeps struct {
	Stdout io.Writer
	Logger *slog.Logger
	// Client overrides the delivery transport; nil uses the default
	// client with the standard timeout.
	Client *http.Client
}

func main() {
	logger := bootstrap.InitLogger()
	code := run(context.Background(), runDeps{
		Stdout: os.Stdout,
		Logger: logger,
	})
	os.Exit(code) //nolint:forbidigo // CLI must report the delivery outcome to CheckMK via exit status
}

func run(ctx context.Context, deps runDeps) int {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		if missing := bootstrap.MissingVars(err); len(missing) > 0 {
			deps.Logger.ErrorContext(ctx, "missing required environment variable",
				"variables", missing)
			return exitFailed
		}
		deps.Logger.ErrorContext(ctx, "load config", "error", err)
		return exitFailed
	}

	msg := notify.Build(cfg.Notification.Context())

	outcome, err := deliver(ctx, cfg.Matrix, msg, deps.Client)
	switch {
	case outcome == matrix.Fatal:
		deps.Logger.ErrorContext(ctx, "matrix configuration invalid", "error", err)
		return outcome.ExitCode()
	case err != nil && outcome != matrix.Delivered:
		deps.Logger.ErrorContext(ctx, "matrix delivery failed",
			"outcome", outcome.String(), "error", err)
		return outcome.ExitCode()
	}
	if err != nil {
		// Accepted by the homeserver, response body lost. Still a success.
		deps.Logger.WarnContext(ctx, "matrix response discarded", "error", err)
	}

	if _, werr := fmt.Fprintln(deps.Stdout, "OK: message sent to Matrix room"); werr != nil {
		deps.Logger.ErrorContext(ctx, "write success line failed", "error", werr)
	}
	return outcome.ExitCode()
}

func deliver(
	ctx context.Context,
	cfg config.MatrixConfig,
	msg notify.Message,
	hc *http.Client,
) (matrix.Outcome, error) {
	client, err := matrix.NewClient(matrix.Config{
		Homeserver:  cfg.Homeserver,
		AccessToken: cfg.AccessToken,
		RoomID:      cfg.RoomID,
		Client:      hc,
	})
	if err != nil {
		// Blank-after-trim parameters slip past the env layer's
		// required check; they are still configuration errors.
		return matrix.Fatal, err
	}
	return client.Send(ctx, msg)
}
