package guruapi

// Package guruapi is the HTTP adapter for the external Guitar Guru lesson API.
// It owns the wire format (envelope decoding, payload extraction, error
// classification) and maps upstream payloads into domain types. It never
// navigates or renders; the unauthorized hook is the only side channel.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

const statusSuccess = "success"

// ExtractPaths are JMESPath expressions locating payloads inside the response
// envelope. Defaults match the documented envelope; they are configurable so a
// contract drift upstream is an ops change, not a code change.
type ExtractPaths struct {
	User        string
	Lessons     string
	Lesson      string
	Asset       string
	AccessToken string
	Message     string
}

// DefaultExtractPaths returns the documented envelope layout.
func DefaultExtractPaths() ExtractPaths {
	return ExtractPaths{
		User:        "data.user",
		Lessons:     "data.lessons",
		Lesson:      "data.lesson",
		Asset:       "data.asset",
		AccessToken: "data.accessToken",
		Message:     "message",
	}
}

// Validate compiles every expression, surfacing bad config at startup.
func (p ExtractPaths) Validate() error {
	for name, expr := range map[string]string{
		"user":         p.User,
		"lessons":      p.Lessons,
		"lesson":       p.Lesson,
		"asset":        p.Asset,
		"access_token": p.AccessToken,
		"message":      p.Message,
	} {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("extract path %q cannot be empty", name)
		}
		if _, err := jmespath.Compile(expr); err != nil {
			return fmt.Errorf("extract path %q: %w", name, err)
		}
	}
	return nil
}

// ClientOptions configures the API client.
type ClientOptions struct {
	// BaseURL is the lesson API origin, e.g. https://api.guitarguru.example.
	BaseURL string
	// HTTPClient is optional; a 15s-timeout client is used when nil.
	HTTPClient *http.Client
	// Paths override the envelope extraction expressions.
	Paths ExtractPaths
	// OnUnauthorized runs once per 401 before the error is returned. The
	// session service uses it to drop the browser session record.
	OnUnauthorized func(ctx context.Context)
	Logger         *slog.Logger
}

// Client is the lesson API adapter. It implements ports.AuthAPI,
// ports.LessonAPI and ports.AssetAPI.
type Client struct {
	http           *http.Client
	baseURL        string
	paths          ExtractPaths
	onUnauthorized func(ctx context.Context)
	logger         *slog.Logger
}

// NewClient builds a Client, validating the base URL and extraction paths.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	paths := opts.Paths
	if (paths == ExtractPaths{}) {
		paths = DefaultExtractPaths()
	}
	if err := paths.Validate(); err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:           httpClient,
		baseURL:        base,
		paths:          paths,
		onUnauthorized: opts.OnUnauthorized,
		logger:         logger,
	}, nil
}

// SetUnauthorizedHook replaces the 401 callback. The session service installs
// it after construction to break the wiring cycle between client and service.
func (c *Client) SetUnauthorizedHook(hook func(ctx context.Context)) {
	c.onUnauthorized = hook
}

// do issues one request and returns the decoded envelope. body is JSON-encoded
// when non-nil; contentType overrides the JSON default for multipart sends
// (raw must then carry the encoded body). A bearer header is attached only
// when token is non-empty.
func (c *Client) do(
	ctx context.Context,
	method, path, token string,
	body any,
	contentType string,
	raw io.Reader,
) (map[string]any, error) {
	var reqBody io.Reader
	switch {
	case raw != nil:
		reqBody = raw
	case body != nil:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "lesson API timed out")
		}
		if errors.Is(err, context.Canceled) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeCanceled, "request canceled")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTransport, "lesson API unreachable")
	}
	defer resp.Body.Close()

	// Cap reads; envelope payloads are small.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTransport, "read lesson API response")
	}

	var envelope map[string]any
	if len(data) > 0 {
		// A malformed body on an error status should not mask the status.
		if unmarshalErr := json.Unmarshal(data, &envelope); unmarshalErr != nil && resp.StatusCode < 300 {
			return nil, apperrors.Wrap(unmarshalErr, apperrors.ErrCodeUpstream, "malformed lesson API response")
		}
	}

	if err := c.classify(ctx, resp.StatusCode, envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

// classify maps a response to the error taxonomy. nil means usable.
func (c *Client) classify(ctx context.Context, statusCode int, envelope map[string]any) error {
	switch {
	case statusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apperrors.Unauthorized("your session has expired, please sign in again")
	case statusCode >= 500:
		c.logger.Warn("lesson API server error", "status", statusCode)
		return apperrors.Upstream("the lesson service is having trouble, please try again shortly")
	case statusCode >= 400:
		if msg := c.extractString(envelope, c.paths.Message); msg != "" {
			return apperrors.Validation(msg)
		}
		return apperrors.Validation("the lesson service rejected the request")
	}

	if status, _ := envelope["status"].(string); status != "" && status != statusSuccess {
		if msg := c.extractString(envelope, c.paths.Message); msg != "" {
			return apperrors.Validation(msg)
		}
		return apperrors.Upstream("the lesson service reported a failure")
	}
	return nil
}

// extract evaluates a JMESPath expression against the envelope and decodes the
// matched subtree into dest.
func (c *Client) extract(envelope map[string]any, expr string, dest any) error {
	node, err := jmespath.Search(expr, envelope)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "extract %q from response", expr)
	}
	if node == nil {
		return apperrors.Upstream(fmt.Sprintf("lesson API response missing %q", expr))
	}
	data, err := json.Marshal(node)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "re-encode response payload")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode response payload")
	}
	return nil
}

func (c *Client) extractString(envelope map[string]any, expr string) string {
	if envelope == nil {
		return ""
	}
	node, err := jmespath.Search(expr, envelope)
	if err != nil {
		return ""
	}
	s, _ := node.(string)
	return strings.TrimSpace(s)
}

func multipartBody(req map[string]string, fileField, fileName string, file io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range req {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field, err)
		}
	}
	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
