package directoryapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/pkg/config"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.DirectoryConfig{BaseURL: srv.URL, ServiceToken: "svc-token", Timeout: 2 * time.Second}, zap.NewNop())
}

func TestClientCreateUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/", r.URL.Path)
		require.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))

		var payload dto.CreateUserPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "STUDENT", payload.Role)
		require.NotNil(t, payload.StudentID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.UserRecord{ID: "u-1", Email: payload.Email, Role: models.RoleStudent})
	})

	studentID := "CS2024001"
	record, err := client.CreateUser(context.Background(), dto.CreateUserPayload{
		Email:     "jane@rbmi.in",
		Role:      "STUDENT",
		StudentID: &studentID,
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", record.ID)
}

func TestClientMapsValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Email already registered"}`))
	})

	_, err := client.CreateUser(context.Background(), dto.CreateUserPayload{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Email already registered", appErr.Message)
}

func TestClientMapsAuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		err := client.DeleteUser(context.Background(), "u-1")
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrAuth.Code, appErr.Code)
		assert.Equal(t, appErrors.ErrAuth.Message, appErr.Message, "auth failures use the fixed message")
	}
}

func TestClientMapsServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrService.Code))
}

func TestClientListUsersPreservesOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"b"},{"id":"a"},{"id":"c"}]`))
	})

	records, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}
