package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	budgetcore "github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
)

// UtilizationReport totals every active budget.
type UtilizationReport struct {
	TotalBudgeted     string `json:"totalBudgeted" doc:"Sum of budget amounts"`
	TotalSpent        string `json:"totalSpent" doc:"Sum of per-budget spending"`
	TotalRemaining    string `json:"totalRemaining" doc:"Sum of per-budget remaining"`
	OverallPercentage string `json:"overallPercentage" doc:"totalSpent as a percentage of totalBudgeted"`
	BudgetCount       int    `json:"budgetCount" doc:"Active budgets"`
	ExceededCount     int    `json:"exceededCount" doc:"Budgets over their limit"`
	WarningCount      int    `json:"warningCount" doc:"Budgets past the warning threshold"`
	HealthyCount      int    `json:"healthyCount" doc:"Remaining budgets"`
}

type UtilizationOutput struct {
	Body UtilizationReport
}

type utilizationReporter interface {
	BudgetUtilizationReport(ctx context.Context) (budgetcore.UtilizationReport, error)
}

// UtilizationHandler handles GET /v1/budget/utilization.
type UtilizationHandler struct {
	BudgetService utilizationReporter
}

func NewUtilizationHandler(svc utilizationReporter) *UtilizationHandler {
	return &UtilizationHandler{BudgetService: svc}
}

func (h *UtilizationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-utilization-report",
		Method:      http.MethodGet,
		Path:        "/v1/budget/utilization",
		Summary:     "Budget utilization report",
		Description: "Totals all active budgets. A transaction covered by two budgets counts toward both.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UtilizationHandler) handle(ctx context.Context, _ *struct{}) (*UtilizationOutput, error) {
	r, err := h.BudgetService.BudgetUtilizationReport(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build utilization report", err)
	}
	return &UtilizationOutput{Body: UtilizationReport{
		TotalBudgeted:     r.TotalBudgeted.StringFixed(2),
		TotalSpent:        r.TotalSpent.StringFixed(2),
		TotalRemaining:    r.TotalRemaining.StringFixed(2),
		OverallPercentage: r.OverallPercentage.StringFixed(1),
		BudgetCount:       r.BudgetCount,
		ExceededCount:     r.ExceededCount,
		WarningCount:      r.WarningCount,
		HealthyCount:      r.HealthyCount,
	}}, nil
}

type SpendingByCategoryInput struct {
	StartDate string `query:"startDate" required:"true" doc:"First day, inclusive"`
	EndDate   string `query:"endDate" required:"true" doc:"Last day, inclusive"`
}

type CategorySpending struct {
	CategoryID       string `json:"categoryID" doc:"Category UUID"`
	Total            string `json:"total" doc:"Sum of expenses"`
	TransactionCount int    `json:"transactionCount" doc:"Number of expenses"`
	Average          string `json:"average" doc:"Mean expense"`
}

type SpendingByCategoryResponseBody struct {
	Categories []CategorySpending `json:"categories" doc:"Largest total first"`
}

type SpendingByCategoryOutput struct {
	Body SpendingByCategoryResponseBody
}

type categorySpendingReporter interface {
	SpendingByCategory(ctx context.Context, start, end time.Time) ([]budgetcore.CategorySpending, error)
}

// SpendingByCategoryHandler handles GET /v1/budget/spending.
type SpendingByCategoryHandler struct {
	BudgetService categorySpendingReporter
}

func NewSpendingByCategoryHandler(svc categorySpendingReporter) *SpendingByCategoryHandler {
	return &SpendingByCategoryHandler{BudgetService: svc}
}

func (h *SpendingByCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "spending-by-category",
		Method:      http.MethodGet,
		Path:        "/v1/budget/spending",
		Summary:     "Spending by category",
		Description: "Groups expenses dated within the range by category.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *SpendingByCategoryHandler) handle(ctx context.Context, input *SpendingByCategoryInput) (*SpendingByCategoryOutput, error) {
	start, err := apiutil.ParseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := apiutil.ParseDate("endDate", input.EndDate)
	if err != nil {
		return nil, err
	}

	spending, err := h.BudgetService.SpendingByCategory(ctx, start, end)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute category spending", err)
	}

	resp := SpendingByCategoryResponseBody{Categories: make([]CategorySpending, len(spending))}
	for i, c := range spending {
		resp.Categories[i] = CategorySpending{
			CategoryID:       c.CategoryID.String(),
			Total:            c.Total.StringFixed(2),
			TransactionCount: c.TransactionCount,
			Average:          c.Average.StringFixed(2),
		}
	}
	return &SpendingByCategoryOutput{Body: resp}, nil
}

type WouldExceedBody struct {
	CategoryID string `json:"categoryID" format:"uuid" doc:"Category UUID"`
	Amount     string `json:"amount" doc:"Decimal amount of the candidate expense"`
	Date       string `json:"date" doc:"Date of the candidate expense"`
}

type WouldExceedInput struct {
	Body WouldExceedBody
}

type WouldExceedResponseBody struct {
	WouldExceed bool `json:"wouldExceed" doc:"True if the covering active budget would go over its limit"`
}

type WouldExceedOutput struct {
	Body WouldExceedResponseBody
}

type wouldExceedChecker interface {
	WouldExceedBudget(ctx context.Context, categoryID uuid.UUID, amount decimal.Decimal, date time.Time) (bool, error)
}

// WouldExceedHandler handles POST /v1/budget/would-exceed.
type WouldExceedHandler struct {
	BudgetService wouldExceedChecker
}

func NewWouldExceedHandler(svc wouldExceedChecker) *WouldExceedHandler {
	return &WouldExceedHandler{BudgetService: svc}
}

func (h *WouldExceedHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "would-exceed-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget/would-exceed",
		Summary:     "Would an expense exceed its budget",
		Description: "Checks a candidate expense against the first active budget covering its category and date.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *WouldExceedHandler) handle(ctx context.Context, input *WouldExceedInput) (*WouldExceedOutput, error) {
	categoryID, err := apiutil.ParseID("categoryID", input.Body.CategoryID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	date, err := apiutil.ParseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	exceeds, err := h.BudgetService.WouldExceedBudget(ctx, categoryID, amount, date)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to check budget", err)
	}
	return &WouldExceedOutput{Body: WouldExceedResponseBody{WouldExceed: exceeds}}, nil
}
