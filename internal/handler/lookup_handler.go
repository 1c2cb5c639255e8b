package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/internal/service"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
	"github.com/macquiz/admin-console-api/pkg/response"
)

type lookupService interface {
	List(ctx context.Context, role models.Role, query string) ([]models.UserRecord, error)
	Export(ctx context.Context, role models.Role, query, format string) (*service.LookupExport, error)
}

// LookupHandler exposes the read-only activity lookup views.
type LookupHandler struct {
	service lookupService
}

// NewLookupHandler builds a new handler.
func NewLookupHandler(service lookupService) *LookupHandler {
	return &LookupHandler{service: service}
}

// lookupRole maps the path segment (plural) to a role.
func lookupRole(c *gin.Context) (models.Role, error) {
	switch c.Param("role") {
	case "teachers":
		return models.RoleTeacher, nil
	case "students":
		return models.RoleStudent, nil
	}
	return "", appErrors.Clone(appErrors.ErrNotFound, "unknown lookup view")
}

// List godoc
// @Summary List users in an activity lookup view
// @Tags Lookup
// @Produce json
// @Param role path string true "Lookup view (teachers|students)"
// @Param search query string false "Free-text search"
// @Success 200 {object} response.Envelope
// @Router /lookup/{role} [get]
func (h *LookupHandler) List(c *gin.Context) {
	role, err := lookupRole(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	users, err := h.service.List(c.Request.Context(), role, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, nil, map[string]interface{}{"total": len(users)})
}

// Export godoc
// @Summary Download an activity lookup view as CSV or PDF
// @Tags Lookup
// @Produce octet-stream
// @Param role path string true "Lookup view (teachers|students)"
// @Param format query string false "Export format (csv|pdf)"
// @Param search query string false "Free-text search"
// @Success 200 {file} binary
// @Router /lookup/{role}/export [get]
func (h *LookupHandler) Export(c *gin.Context) {
	role, err := lookupRole(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Export(c.Request.Context(), role, c.Query("search"), c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
