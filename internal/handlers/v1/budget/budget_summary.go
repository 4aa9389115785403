package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	budgetcore "github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

type BudgetIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Budget UUID"`
}

type BudgetSummaryOutput struct {
	Body apiutil.Summary
}

type budgetSummarizer interface {
	GetBudgetSummary(ctx context.Context, id uuid.UUID) (budgetcore.Summary, error)
}

// BudgetSummaryHandler handles GET /v1/budget/{id}/summary.
type BudgetSummaryHandler struct {
	BudgetService budgetSummarizer
}

func NewBudgetSummaryHandler(svc budgetSummarizer) *BudgetSummaryHandler {
	return &BudgetSummaryHandler{BudgetService: svc}
}

func (h *BudgetSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget-summary",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}/summary",
		Summary:     "Budget spending summary",
		Description: "Computes live spending against one budget.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *BudgetSummaryHandler) handle(ctx context.Context, input *BudgetIDInput) (*BudgetSummaryOutput, error) {
	id, err := apiutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	sum, err := h.BudgetService.GetBudgetSummary(ctx, id)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to summarize budget")
	}
	return &BudgetSummaryOutput{Body: apiutil.NewSummary(sum)}, nil
}

type EvaluateBudgetOutput struct {
	Body BudgetResultBody
}

type budgetEvaluator interface {
	EvaluateBudget(ctx context.Context, id uuid.UUID) (*service.BudgetResult, error)
}

// EvaluateBudgetHandler handles GET /v1/budget/{id}/evaluate.
type EvaluateBudgetHandler struct {
	BudgetService budgetEvaluator
}

func NewEvaluateBudgetHandler(svc budgetEvaluator) *EvaluateBudgetHandler {
	return &EvaluateBudgetHandler{BudgetService: svc}
}

func (h *EvaluateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "evaluate-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}/evaluate",
		Summary:     "Evaluate budget",
		Description: "Refreshes a budget's spending and runs the budget rules against it.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *EvaluateBudgetHandler) handle(ctx context.Context, input *BudgetIDInput) (*EvaluateBudgetOutput, error) {
	id, err := apiutil.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	res, err := h.BudgetService.EvaluateBudget(ctx, id)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to evaluate budget")
	}
	return &EvaluateBudgetOutput{Body: newBudgetResultBody(res)}, nil
}
