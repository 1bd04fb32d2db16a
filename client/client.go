// Package client issues the mutation requests the page layer sends to the
// application server: profile materialization, task edit/delete, and the
// completion toggle. The server is the sole source of truth; every call here
// is fire-and-check, with no retries and no client-side reconciliation.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dsnks-19/Task-management-system/domain"
)

const tracerName = "taskboard/client"

// Result is the envelope every mutation endpoint answers with. Message is
// shown to the user verbatim.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// APIError is a failed server call: a non-2xx status, or a 2xx body with
// success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// SessionSource supplies the current session cookie value, when one exists.
type SessionSource func(ctx context.Context) (string, bool)

// Client talks to the application server.
type Client struct {
	base    string
	httpc   *http.Client
	log     *log.Logger
	tracer  trace.Tracer
	session SessionSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger overrides the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// WithSessionSource attaches the user_id cookie to every request, the way
// the browser does implicitly.
func WithSessionSource(src SessionSource) Option {
	return func(c *Client) { c.session = src }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		httpc:  http.DefaultClient,
		log:    log.StandardLogger(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateUser materializes the user profile after the provider account was
// created.
func (c *Client) CreateUser(ctx context.Context, profile domain.UserProfile) error {
	payload, err := sonic.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return c.post(ctx, "create_user", "/api/create-user", "application/json", bytes.NewReader(payload))
}

// EditTask submits the edit form for one task.
func (c *Client) EditTask(ctx context.Context, boardID, taskID string, form url.Values) error {
	path := fmt.Sprintf("/boards/%s/tasks/%s/edit", url.PathEscape(boardID), url.PathEscape(taskID))
	return c.post(ctx, "edit_task", path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// DeleteTask deletes one task.
func (c *Client) DeleteTask(ctx context.Context, boardID, taskID string) error {
	path := fmt.Sprintf("/boards/%s/tasks/%s/delete", url.PathEscape(boardID), url.PathEscape(taskID))
	return c.post(ctx, "delete_task", path, "", nil)
}

// ToggleComplete posts the completion-toggle form to its rendered action
// path.
func (c *Client) ToggleComplete(ctx context.Context, action string, form url.Values) error {
	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}
	return c.post(ctx, "toggle_complete", action, "application/x-www-form-urlencoded", body)
}

func (c *Client) post(ctx context.Context, op, path, contentType string, body io.Reader) (err error) {
	ctx, span := c.tracer.Start(ctx, "taskboard."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttributes(
		attribute.String("http.route", path),
		attribute.String("taskboard.request_id", requestID),
	)
	start := time.Now()
	stage := ""
	status := 0

	defer func() {
		fields := log.Fields{
			"route":      path,
			"request_id": requestID,
			"status":     status,
			"total_ms":   time.Since(start).Milliseconds(),
		}
		if stage != "" {
			fields["error_stage"] = stage
		}
		if err != nil {
			fields["error"] = err.Error()
			span.SetStatus(codes.Error, err.Error())
			c.log.WithFields(fields).Error("server request failed")
			return
		}
		span.SetStatus(codes.Ok, "")
		c.log.WithFields(fields).Debug("server request")
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		stage = "build_request"
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", requestID)
	if c.session != nil {
		if userID, ok := c.session(ctx); ok {
			req.AddCookie(&http.Cookie{Name: "user_id", Value: userID, Path: "/"})
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		stage = "network"
		return err
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	var result Result
	decodeErr := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&result)

	if status < 200 || status >= 300 {
		stage = "server"
		return &APIError{Status: status, Message: result.Message}
	}
	if decodeErr != nil {
		stage = "decode_response"
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !result.Success {
		stage = "server"
		return &APIError{Status: status, Message: result.Message}
	}
	return nil
}
