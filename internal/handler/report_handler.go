package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/report"
	"github.com/macquiz/admin-console-api/pkg/response"
)

// ReportHandler exposes the derived filter options for the reporting views.
type ReportHandler struct{}

// NewReportHandler builds a new handler.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// Semesters godoc
// @Summary Derive the semester filter options for a class year
// @Tags Reports
// @Produce json
// @Param class_year query string false "Class year filter"
// @Success 200 {object} response.Envelope
// @Router /reports/semesters [get]
func (h *ReportHandler) Semesters(c *gin.Context) {
	classYear := c.DefaultQuery("class_year", "All")
	response.JSON(c, http.StatusOK, dto.SemesterOptions{
		ClassYear: classYear,
		Semesters: report.SemesterOptions(classYear),
	}, nil)
}

// ClassYears godoc
// @Summary List the known class years
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/class-years [get]
func (h *ReportHandler) ClassYears(c *gin.Context) {
	response.JSON(c, http.StatusOK, report.ClassYears(), nil)
}
