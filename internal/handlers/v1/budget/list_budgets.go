package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/logging"
)

type ListBudgetsInput struct {
	ActiveOnly bool `query:"activeOnly" doc:"Only return active budgets"`
}

type ListBudgetsResponseBody struct {
	Budgets []apiutil.Budget `json:"budgets" doc:"Stored budgets"`
}

type ListBudgetsOutput struct {
	Body ListBudgetsResponseBody
}

type budgetLister interface {
	ListBudgets(ctx context.Context, activeOnly bool) ([]domain.Budget, error)
}

// ListBudgetsHandler handles GET /v1/budget.
type ListBudgetsHandler struct {
	BudgetService budgetLister
}

func NewListBudgetsHandler(svc budgetLister) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc}
}

func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "List budgets",
		Description: "Returns stored budgets ordered by start date then name.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := h.BudgetService.ListBudgets(ctx, input.ActiveOnly)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list budgets", err)
	}
	logging.GetLogData(ctx).AddData("budgetCount", len(budgets))

	resp := ListBudgetsResponseBody{Budgets: make([]apiutil.Budget, len(budgets))}
	for i, b := range budgets {
		resp.Budgets[i] = apiutil.NewBudget(b)
	}
	return &ListBudgetsOutput{Body: resp}, nil
}
