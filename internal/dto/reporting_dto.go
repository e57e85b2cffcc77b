package dto

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRangeParams are the query parameters shared by the report endpoints.
// Both bounds are required; the handler reports their absence as an invalid request.
type DateRangeParams struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// BreakdownParams adds an optional ordering to the date range.
type BreakdownParams struct {
	DateRangeParams
	SortBy string `form:"sortBy" binding:"omitempty,oneof=income expense"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// TotalsResponse represents the income/expense totals report
type TotalsResponse struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Net       decimal.Decimal `json:"net"`
}

// CategorySummaryResponse represents one row of the category breakdown
type CategorySummaryResponse struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

// ToTotalsResponse converts domain totals to the API representation.
func ToTotalsResponse(totals *domain.TypeTotals, rng domain.DateRange) TotalsResponse {
	return TotalsResponse{
		StartDate: rng.Start.Format(domain.DateLayout),
		EndDate:   rng.End.Format(domain.DateLayout),
		Income:    totals.Income,
		Expense:   totals.Expense,
		Net:       totals.Net(),
	}
}

// ToCategorySummaryResponses converts breakdown rows, keeping their order.
func ToCategorySummaryResponses(rows []domain.CategorySummary) []CategorySummaryResponse {
	res := make([]CategorySummaryResponse, len(rows))
	for i, r := range rows {
		res[i] = CategorySummaryResponse{Category: r.Category, Income: r.Income, Expense: r.Expense}
	}
	return res
}
