package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	budgetcore "github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
)

type BudgetAlertsInput struct {
	Severity string `query:"severity" enum:"all,exceeded,warning" default:"all" doc:"Which alerts to return"`
}

type BudgetAlertsResponseBody struct {
	Alerts []apiutil.Alert `json:"alerts" doc:"Exceeded budgets first, then warnings"`
}

type BudgetAlertsOutput struct {
	Body BudgetAlertsResponseBody
}

type budgetAlerter interface {
	AllBudgetAlerts(ctx context.Context) ([]budgetcore.Alert, error)
	ExceededBudgets(ctx context.Context) ([]budgetcore.Alert, error)
	WarningBudgets(ctx context.Context) ([]budgetcore.Alert, error)
}

// BudgetAlertsHandler handles GET /v1/budget/alerts.
type BudgetAlertsHandler struct {
	BudgetService budgetAlerter
}

func NewBudgetAlertsHandler(svc budgetAlerter) *BudgetAlertsHandler {
	return &BudgetAlertsHandler{BudgetService: svc}
}

func (h *BudgetAlertsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budget-alerts",
		Method:      http.MethodGet,
		Path:        "/v1/budget/alerts",
		Summary:     "Budget alerts",
		Description: "Lists active budgets that are exceeded or past the warning threshold.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *BudgetAlertsHandler) handle(ctx context.Context, input *BudgetAlertsInput) (*BudgetAlertsOutput, error) {
	var (
		alerts []budgetcore.Alert
		err    error
	)
	switch input.Severity {
	case "exceeded":
		alerts, err = h.BudgetService.ExceededBudgets(ctx)
	case "warning":
		alerts, err = h.BudgetService.WarningBudgets(ctx)
	default:
		alerts, err = h.BudgetService.AllBudgetAlerts(ctx)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load budget alerts", err)
	}
	return &BudgetAlertsOutput{Body: BudgetAlertsResponseBody{Alerts: apiutil.NewAlerts(alerts)}}, nil
}

type ActiveBudgetsResponseBody struct {
	Budgets []apiutil.Summary `json:"budgets" doc:"Summaries of every budget active today"`
}

type ActiveBudgetsOutput struct {
	Body ActiveBudgetsResponseBody
}

type activeBudgetLister interface {
	ActiveBudgetsWithSpending(ctx context.Context) ([]budgetcore.Summary, error)
}

// ActiveBudgetsHandler handles GET /v1/budget/active.
type ActiveBudgetsHandler struct {
	BudgetService activeBudgetLister
}

func NewActiveBudgetsHandler(svc activeBudgetLister) *ActiveBudgetsHandler {
	return &ActiveBudgetsHandler{BudgetService: svc}
}

func (h *ActiveBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-active-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budget/active",
		Summary:     "Active budgets with spending",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ActiveBudgetsHandler) handle(ctx context.Context, _ *struct{}) (*ActiveBudgetsOutput, error) {
	summaries, err := h.BudgetService.ActiveBudgetsWithSpending(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load active budgets", err)
	}
	resp := ActiveBudgetsResponseBody{Budgets: make([]apiutil.Summary, len(summaries))}
	for i, s := range summaries {
		resp.Budgets[i] = apiutil.NewSummary(s)
	}
	return &ActiveBudgetsOutput{Body: resp}, nil
}
