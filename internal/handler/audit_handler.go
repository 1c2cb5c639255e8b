package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/pkg/response"
)

const defaultAuditLimit = 50

type auditReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditEntry, error)
}

// AuditHandler exposes the provisioning audit trail. When the trail is
// disabled the handler serves an empty list.
type AuditHandler struct {
	repo auditReader
}

// NewAuditHandler builds a new handler.
func NewAuditHandler(repo auditReader) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List godoc
// @Summary List recent provisioning audit entries
// @Tags Audit
// @Produce json
// @Param actor query string false "Filter by actor id"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	if h.repo == nil {
		response.JSON(c, http.StatusOK, []models.AuditEntry{}, nil)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit <= 0 {
		limit = defaultAuditLimit
	}

	var entries []models.AuditEntry
	if actor := c.Query("actor"); actor != "" {
		entries, err = h.repo.ListByActor(c.Request.Context(), actor, limit)
	} else {
		entries, err = h.repo.ListRecent(c.Request.Context(), limit)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
