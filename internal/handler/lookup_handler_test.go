package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/internal/service"
)

type lookupServiceMock struct {
	users    []models.UserRecord
	export   *service.LookupExport
	lastRole models.Role
	lastFmt  string
}

func (m *lookupServiceMock) List(_ context.Context, role models.Role, _ string) ([]models.UserRecord, error) {
	m.lastRole = role
	return m.users, nil
}

func (m *lookupServiceMock) Export(_ context.Context, role models.Role, _ string, format string) (*service.LookupExport, error) {
	m.lastRole = role
	m.lastFmt = format
	return m.export, nil
}

func TestLookupHandlerList(t *testing.T) {
	mock := &lookupServiceMock{users: []models.UserRecord{{ID: "s-1", Role: models.RoleStudent}}}
	h := NewLookupHandler(mock)

	c, w := newTestContext(t, http.MethodGet, "/lookup/students", nil)
	c.Params = gin.Params{{Key: "role", Value: "students"}}
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleStudent, mock.lastRole)
}

func TestLookupHandlerUnknownView(t *testing.T) {
	h := NewLookupHandler(&lookupServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/lookup/admins", nil)
	c.Params = gin.Params{{Key: "role", Value: "admins"}}
	h.List(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookupHandlerExport(t *testing.T) {
	mock := &lookupServiceMock{export: &service.LookupExport{
		Filename:    "teachers_complete_details_2025-03-10.csv",
		ContentType: "text/csv",
		Payload:     []byte("\"Sr. No.\"\n"),
	}}
	h := NewLookupHandler(mock)

	c, w := newTestContext(t, http.MethodGet, "/lookup/teachers/export?format=csv", nil)
	c.Params = gin.Params{{Key: "role", Value: "teachers"}}
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mock.lastFmt)
	assert.Equal(t, `attachment; filename="teachers_complete_details_2025-03-10.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}
