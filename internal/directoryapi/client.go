// Package directoryapi is the HTTP client for the upstream user-management
// service. The console treats it as an opaque collaborator: payloads go out,
// records or taxonomy errors come back.
package directoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/pkg/config"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

// Client talks to the user-management service over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a Client from directory configuration.
func New(cfg config.DirectoryConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.ServiceToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// CreateUser provisions a new account from a validated draft payload.
func (c *Client) CreateUser(ctx context.Context, payload dto.CreateUserPayload) (*models.UserRecord, error) {
	var record models.UserRecord
	if err := c.do(ctx, http.MethodPost, "/users/", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateUser applies a patch to an existing account.
func (c *Client) UpdateUser(ctx context.Context, id string, payload dto.UserPatchPayload) (*models.UserRecord, error) {
	var record models.UserRecord
	if err := c.do(ctx, http.MethodPut, "/users/"+id, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

// ListUsers returns all accounts in the order the service serves them.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	var records []models.UserRecord
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrService.Code, appErrors.ErrService.Status, "user management service unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrService.Code, appErrors.ErrService.Status, "decode service response")
	}
	return nil
}

// mapError folds upstream failures into the console's taxonomy: 400 becomes
// a validation error carrying the server-supplied detail, 401/403 a fixed
// permission-denied message, everything else a service error.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(raw, &payload)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		message := payload.Detail
		if message == "" {
			message = "the service rejected the request"
		}
		return appErrors.Clone(appErrors.ErrValidation, message)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return appErrors.ErrAuth
	default:
		message := payload.Detail
		if message == "" {
			message = fmt.Sprintf("user management service returned status %d", resp.StatusCode)
		}
		c.logger.Warn("directory call failed",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", payload.Detail),
		)
		return appErrors.Clone(appErrors.ErrService, message)
	}
}
