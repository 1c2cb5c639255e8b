package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/internal/service"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
	"github.com/macquiz/admin-console-api/pkg/response"
)

type provisionService interface {
	CreateUser(ctx context.Context, actor *models.JWTClaims, draft dto.UserDraft) (*service.ProvisionOutcome, error)
	UpdateUser(ctx context.Context, actor *models.JWTClaims, id string, patch dto.UserPatch) (*service.ProvisionOutcome, error)
	DeleteUser(ctx context.Context, actor *models.JWTClaims, id string, confirmed bool) error
	ListUsers(ctx context.Context, filter, query string) ([]models.UserRecord, error)
	RefreshDirectory(ctx context.Context) error
}

// UserHandler exposes the provisioning endpoints.
type UserHandler struct {
	service provisionService
}

// NewUserHandler builds a new handler.
func NewUserHandler(service provisionService) *UserHandler {
	return &UserHandler{service: service}
}

// Create godoc
// @Summary Provision a new user account
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.UserDraft true "User draft"
// @Success 201 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var draft dto.UserDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user draft"))
		return
	}

	outcome, err := h.service.CreateUser(c.Request.Context(), claimsFromContext(c), draft)
	if err != nil {
		respondProvisionError(c, outcome, err)
		return
	}
	response.Created(c, outcome.Record)
}

// Update godoc
// @Summary Update an existing user account
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param payload body dto.UserPatch true "User patch"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var patch dto.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user patch"))
		return
	}

	outcome, err := h.service.UpdateUser(c.Request.Context(), claimsFromContext(c), c.Param("id"), patch)
	if err != nil {
		respondProvisionError(c, outcome, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome.Record, nil)
}

// Delete godoc
// @Summary Delete a user account
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Param confirm query bool true "Explicit confirmation"
// @Success 204
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.service.DeleteUser(c.Request.Context(), claimsFromContext(c), c.Param("id"), confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List directory users
// @Tags Users
// @Produce json
// @Param filter query string false "Role filter (all|teacher|student)"
// @Param search query string false "Free-text search"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context(), c.DefaultQuery("filter", "all"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, nil, map[string]interface{}{"total": len(users)})
}

// Refresh godoc
// @Summary Force a directory snapshot refetch
// @Tags Users
// @Produce json
// @Success 204
// @Router /users/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	if err := h.service.RefreshDirectory(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// respondProvisionError attaches field errors, when present, to the error
// envelope so callers can highlight the offending inputs.
func respondProvisionError(c *gin.Context, outcome *service.ProvisionOutcome, err error) {
	appErr := appErrors.FromError(err)
	envelope := response.Envelope{Error: appErr}
	if outcome != nil && len(outcome.FieldErrors) > 0 {
		envelope.Meta = map[string]interface{}{"field_errors": outcome.FieldErrors}
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, envelope)
}
