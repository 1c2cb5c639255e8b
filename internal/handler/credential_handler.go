package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/email"
	"github.com/macquiz/admin-console-api/internal/password"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
	"github.com/macquiz/admin-console-api/pkg/response"
)

// CredentialHandler exposes the stateless provisioning assists: password
// assessment and generation, and email-domain suggestions.
type CredentialHandler struct{}

// NewCredentialHandler builds a new handler.
func NewCredentialHandler() *CredentialHandler {
	return &CredentialHandler{}
}

// Assess godoc
// @Summary Score a candidate password against the provisioning policy
// @Tags Credentials
// @Accept json
// @Produce json
// @Param payload body dto.AssessRequest true "Candidate password"
// @Success 200 {object} response.Envelope
// @Router /credentials/assess [post]
func (h *CredentialHandler) Assess(c *gin.Context) {
	var req dto.AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assessment payload"))
		return
	}
	response.JSON(c, http.StatusOK, password.Assess(req.Password), nil)
}

// Generate godoc
// @Summary Generate a policy-compliant temporary password
// @Tags Credentials
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /credentials/generate [post]
func (h *CredentialHandler) Generate(c *gin.Context) {
	generated := password.Generate()
	response.JSON(c, http.StatusOK, dto.GeneratedCredential{Password: generated}, nil)
}

// Domains godoc
// @Summary Suggest allow-listed email domains for an in-progress address
// @Tags Credentials
// @Produce json
// @Param local_part query string false "Typed local part"
// @Success 200 {object} response.Envelope
// @Router /email/domains [get]
func (h *CredentialHandler) Domains(c *gin.Context) {
	localPart := c.Query("local_part")

	var assist email.Assist
	assist.Input(localPart)

	response.JSON(c, http.StatusOK, dto.DomainSuggestions{
		LocalPart: assist.LocalPart(),
		Domains:   assist.Suggestions(),
		Shown:     assist.Shown(),
	}, nil)
}
