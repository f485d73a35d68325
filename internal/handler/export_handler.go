package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

// ExportHandler serves downloadable week schedules.
type ExportHandler struct {
	exports ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Week godoc
// @Summary Export week schedule
// @Description Downloads the week grid as CSV or PDF.
// @Tags admin
// @Produce application/octet-stream
// @Param format query string true "csv or pdf"
// @Param weekStart query string false "week start (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/export [get]
func (h *ExportHandler) Week(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var (
		out         []byte
		filename    string
		contentType string
	)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		out, filename, err = h.exports.WeekCSV(c.Request.Context(), week)
		contentType = "text/csv"
	case "pdf":
		out, filename, err = h.exports.WeekPDF(c.Request.Context(), week)
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format)))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, out)
}
