package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to income and expense reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/totals", h.getTotals)
		reportingGroup.GET("/breakdown", h.getBreakdown)
	}
}

// parseDateRange turns start/end query values into an inclusive range.
func parseDateRange(start, end string) (domain.DateRange, error) {
	if start == "" || end == "" {
		return domain.DateRange{}, fmt.Errorf("%w: start and end dates are required", apperrors.ErrInvalidRequest)
	}
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: invalid start date %q, use YYYY-MM-DD", apperrors.ErrInvalidRequest, start)
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: invalid end date %q, use YYYY-MM-DD", apperrors.ErrInvalidRequest, end)
	}
	return domain.NewDateRange(s, e)
}

// getTotals godoc
// @Summary Income and expense totals
// @Description Sums transaction amounts per type over an inclusive date range
// @Tags reports
// @Produce json
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.TotalsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/totals [get]
func (h *reportingHandler) getTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "Totals", err)
		return
	}

	rng, err := parseDateRange(params.Start, params.End)
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}

	totals, err := h.reportingService.Totals(c.Request.Context(), rng)
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, dto.ToTotalsResponse(totals, rng))
}

// getBreakdown godoc
// @Summary Per-category breakdown
// @Description Sums allocation amounts per category name and type over an inclusive date range
// @Tags reports
// @Produce json
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Param sortBy query string false "Sort key" Enums(income, expense)
// @Param order query string false "Sort direction" Enums(asc, desc) default(asc)
// @Success 200 {array} dto.CategorySummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Allocation references a missing category"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/breakdown [get]
func (h *reportingHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BreakdownParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "Breakdown", err)
		return
	}

	rng, err := parseDateRange(params.Start, params.End)
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}

	var sort *domain.SummarySort
	if params.SortBy != "" {
		dir := domain.Ascending
		if params.Order != "" {
			dir = domain.SortDirection(params.Order)
		}
		sort = &domain.SummarySort{Key: domain.SummarySortKey(params.SortBy), Direction: dir}
	}

	rows, err := h.reportingService.Breakdown(c.Request.Context(), rng, sort)
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}

	logger.Debug("Breakdown served", slog.Int("rows", len(rows)))
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponses(rows))
}
