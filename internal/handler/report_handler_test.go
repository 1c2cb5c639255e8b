package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macquiz/admin-console-api/internal/dto"
)

func TestReportHandlerSemesters(t *testing.T) {
	h := NewReportHandler()

	c, w := newTestContext(t, http.MethodGet, "/reports/semesters?class_year=2nd+Year", nil)
	h.Semesters(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.SemesterOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "2nd Year", envelope.Data.ClassYear)
	assert.Equal(t, []string{"All", "Sem 3", "Sem 4"}, envelope.Data.Semesters)
}

func TestReportHandlerSemestersDefaultsToAll(t *testing.T) {
	h := NewReportHandler()

	c, w := newTestContext(t, http.MethodGet, "/reports/semesters", nil)
	h.Semesters(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.SemesterOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "All", envelope.Data.ClassYear)
	assert.Len(t, envelope.Data.Semesters, 9)
}
