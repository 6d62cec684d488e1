package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "walleto/internal/errors"
	"walleto/internal/pagination"
	"walleto/internal/services"
)

// ReportHandler handles report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportQuery represents the report query parameters
type ReportQuery struct {
	CategoryID *uint  `form:"category"`
	From       string `form:"from"`
	To         string `form:"to"`
	Period     string `form:"period" binding:"omitempty,report_period"`
	pagination.PageRequest
}

// GetReport returns the filtered, paginated, aggregated operation report
// @Summary     Get an operation report
// @Description List operations filtered by a category subtree and/or a date
// @Description window, newest first, with totals over the whole filtered set
// @Tags        report
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category query int false "Category ID, includes all descendants"
// @Param       from query string false "Inclusive lower bound, ISO-8601"
// @Param       to query string false "Exclusive upper bound, ISO-8601"
// @Param       period query string false "Named period" Enums(week, month, quarter, year, prevweek, prevmonth, prevquarter, prevyear)
// @Param       page query int false "Page number, 1-based"
// @Param       page_size query int false "Page size, max 100"
// @Success     200 {object} services.Report "Report page"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Bad period or date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.reportService.GetReport(userID, services.ReportFilter{
		CategoryID: query.CategoryID,
		From:       query.From,
		To:         query.To,
		Period:     query.Period,
		Page:       query.PageRequest,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
