package matrix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkmk-matrix-notify/internal/notify"
)

// DefaultTimeout bounds the whole request, including connection setup
// and TLS negotiation.
const DefaultTimeout = 15 * time.Second

// Config captures runtime configuration for the Matrix sink.
type Config struct {
	Homeserver  string
	AccessToken string
	RoomID      string
	Timeout     time.Duration
	Client      *http.Client
}

// Client delivers notifications to a single Matrix room.
type Client struct {
	homeserver  string
	accessToken string
	roomID      string
	client      *http.Client
}

// NewClient builds a Matrix client. Callers must provide the full
// homeserver/token/room triple; a partial triple is a configuration
// error, not a delivery failure.
func NewClient(cfg Config) (*Client, error) {
	homeserver := strings.TrimSpace(cfg.Homeserver)
	if homeserver == "" {
		return nil, errors.New("matrix homeserver is required")
	}
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		return nil, errors.New("matrix access token is required")
	}
	roomID := strings.TrimSpace(cfg.RoomID)
	if roomID == "" {
		return nil, errors.New("matrix room id is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		homeserver:  homeserver,
		accessToken: token,
		roomID:      roomID,
		client:      hc,
	}, nil
}

// Outcome classifies the result of a delivery attempt.
type Outcome int

// Delivery outcomes, ordered by the process exit code they map to.
const (
	Delivered Outcome = iota
	Retryable
	Fatal
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Retryable:
		return "retryable"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ExitCode maps the outcome to the process exit code the monitoring
// system expects: 0 delivered, 1 retry later, 2 never retry.
func (o Outcome) ExitCode() int {
	switch o {
	case Delivered:
		return 0
	case Retryable:
		return 1
	case Fatal:
		return 2
	default:
		return 1
	}
}

// StatusError reports a non-2xx response from the homeserver.
type StatusError struct {
	StatusCode int
	Status     string
	Detail     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("matrix api %s", e.Status)
	}
	return fmt.Sprintf("matrix api %s: %s", e.Status, e.Detail)
}

// Send delivers the message to the configured room with a single PUT.
// A fresh transaction id is generated per call; the homeserver uses it
// to deduplicate transport-level retries of the same request.
//
// There is no internal retry loop. Every failure is Retryable: the
// invoking monitoring system owns retry-by-reinvocation, and it treats
// non-2xx statuses (including 401/403) the same as transport faults.
func (c *Client) Send(ctx context.Context, msg notify.Message) (Outcome, error) {
	txnID := uuid.NewString()
	url := fmt.Sprintf("https://%s/_matrix/client/v3/rooms/%s/send/m.room.message/%s",
		c.homeserver, escapePathSegment(c.roomID), txnID)

	payload := map[string]string{
		"msgtype":        "m.text",
		"body":           msg.PlainText,
		"format":         "org.matrix.custom.html",
		"formatted_body": msg.HTMLText,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Retryable, fmt.Errorf("encode matrix payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return Retryable, fmt.Errorf("create matrix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return Retryable, fmt.Errorf("matrix request timed out: %w", err)
		}
		return Retryable, fmt.Errorf("matrix request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Retryable, c.handleErrorResponse(resp)
	}

	if err := drainSuccess(resp); err != nil {
		// The homeserver accepted the event; a lossy body read does
		// not unsend it.
		return Delivered, err
	}
	return Delivered, nil
}

// escapePathSegment percent-encodes every byte outside the RFC 3986
// unreserved set. Room ids carry "!" and ":", which url.PathEscape
// leaves raw because they are legal in a path segment; the Matrix API
// expects them encoded.
func escapePathSegment(s string) string {
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
			b.WriteByte(ch)
		case ch == '-' || ch == '.' || ch == '_' || ch == '~':
			b.WriteByte(ch)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[ch>>4])
			b.WriteByte(upperhex[ch&0xf])
		}
	}
	return b.String()
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain matrix response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain matrix response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()

	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Detail:     strings.TrimSpace(string(respBody)),
	}
	if readErr != nil {
		statusErr.Detail = fmt.Sprintf("(unreadable error body: %v)", readErr)
	}
	if closeErr != nil {
		return errors.Join(statusErr, fmt.Errorf("close response body: %w", closeErr))
	}
	return statusErr
}
