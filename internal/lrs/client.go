package lrs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/playtrack/internal/xapi"
)

// VersionHeader is the header every xAPI request must carry.
const VersionHeader = "X-Experience-API-Version"

// ResponseError is a non-2xx answer from the LRS.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

// About is the body of GET {endpoint}about.
type About struct {
	Version    []string       `json:"version"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Client talks to an LRS statements API.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewClient creates a client for the LRS at endpoint, e.g. https://lrs.example.com/xapi/.
// Basic auth is sent when username is not empty.
func NewClient(endpoint, username, password string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(endpoint, "/"))
	client.SetHeader(VersionHeader, xapi.Version)
	client.SetHeader("Content-Type", "application/json")
	if username != "" {
		client.SetBasicAuth(username, password)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
		retryDelay:       100 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError reports whether a failed request may succeed when repeated.
// Transport errors, 5xx and 429 are retried; any other status is final.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.StatusCode >= http.StatusInternalServerError ||
			responseErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// Submit posts one statement and retries transient failures with exponential backoff.
func (client *Client) Submit(ctx context.Context, statement xapi.Statement) error {
	attempt := 0
	return retry.Do(
		func() error {
			attempt++
			err := client.submit(ctx, statement)
			if err == nil {
				return nil
			}
			if !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			slog.Default().Info("Retrying LRS submission",
				"attempt", attempt,
				"statementId", statement.ID,
				"error", err)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (client *Client) submit(ctx context.Context, statement xapi.Statement) error {
	var ids []string
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(statement).
		SetResult(&ids).
		Post("/statements")
	if err != nil {
		return fmt.Errorf("httpClient.Post(statements) > %w", err)
	}
	if response.IsError() {
		return &ResponseError{StatusCode: response.StatusCode(), Body: response.String()}
	}
	slog.Default().Debug("LRS accepted statement",
		"statementId", statement.ID,
		"storedIds", ids)
	return nil
}

// Ping fetches the LRS about resource to check the endpoint and credentials.
func (client *Client) Ping(ctx context.Context) (About, error) {
	var about About
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&about).
		Get("/about")
	if err != nil {
		return About{}, fmt.Errorf("httpClient.Get(about) > %w", err)
	}
	if response.IsError() {
		return About{}, &ResponseError{StatusCode: response.StatusCode(), Body: response.String()}
	}
	return about, nil
}
