package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

// UpdateBudgetBody lists the fields to change. Omitted fields are kept.
type UpdateBudgetBody struct {
	ID         string  `json:"id" format:"uuid" doc:"Budget UUID"`
	Name       *string `json:"name,omitempty" doc:"Budget name"`
	Amount     *string `json:"amount,omitempty" doc:"Decimal amount"`
	Currency   string  `json:"currency,omitempty" doc:"Currency of amount, defaults to the server currency"`
	CategoryID *string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	StartDate  *string `json:"startDate,omitempty" doc:"First day of the window"`
	EndDate    *string `json:"endDate,omitempty" doc:"Last day of the window"`
	IsActive   *bool   `json:"isActive,omitempty" doc:"Whether the budget counts in reports and projections"`
}

type UpdateBudgetInput struct {
	Body UpdateBudgetBody
}

type UpdateBudgetOutput struct {
	Body BudgetResultBody
}

type budgetUpdater interface {
	UpdateBudget(ctx context.Context, id uuid.UUID, update domain.BudgetUpdate) (*service.BudgetResult, error)
}

// UpdateBudgetHandler handles POST /v1/budget/update.
type UpdateBudgetHandler struct {
	BudgetService   budgetUpdater
	DefaultCurrency string
}

func NewUpdateBudgetHandler(svc budgetUpdater, defaultCurrency string) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc, DefaultCurrency: defaultCurrency}
}

func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget/update",
		Summary:     "Update budget",
		Description: "Applies a partial update and recomputes spending for the new category and window.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func parseUpdateBudgetInput(input *UpdateBudgetInput, defaultCurrency string) (uuid.UUID, domain.BudgetUpdate, error) {
	body := input.Body
	update := domain.BudgetUpdate{Name: body.Name, IsActive: body.IsActive}

	id, err := apiutil.ParseID("id", body.ID)
	if err != nil {
		return uuid.Nil, update, err
	}
	if body.Amount != nil {
		amount, err := apiutil.ParseMoney("amount", *body.Amount, body.Currency, defaultCurrency)
		if err != nil {
			return uuid.Nil, update, err
		}
		update.Amount = &amount
	}
	if body.CategoryID != nil {
		categoryID, err := apiutil.ParseID("categoryID", *body.CategoryID)
		if err != nil {
			return uuid.Nil, update, err
		}
		update.CategoryID = &categoryID
	}
	if body.StartDate != nil {
		start, err := apiutil.ParseDate("startDate", *body.StartDate)
		if err != nil {
			return uuid.Nil, update, err
		}
		update.StartDate = &start
	}
	if body.EndDate != nil {
		end, err := apiutil.ParseDate("endDate", *body.EndDate)
		if err != nil {
			return uuid.Nil, update, err
		}
		update.EndDate = &end
	}
	return id, update, nil
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	id, update, err := parseUpdateBudgetInput(input, h.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	res, err := h.BudgetService.UpdateBudget(ctx, id, update)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to update budget")
	}
	return &UpdateBudgetOutput{Body: newBudgetResultBody(res)}, nil
}
