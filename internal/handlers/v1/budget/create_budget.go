package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/service"
)

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	Name       string `json:"name" minLength:"1" doc:"Budget name"`
	Amount     string `json:"amount" doc:"Positive decimal amount"`
	Currency   string `json:"currency,omitempty" doc:"ISO currency code, defaults to the server currency"`
	CategoryID string `json:"categoryID" format:"uuid" doc:"Category UUID"`
	Period     string `json:"period,omitempty" enum:"custom,monthly,yearly" doc:"How the window is derived, defaults to custom"`
	StartDate  string `json:"startDate" doc:"First day of the window"`
	EndDate    string `json:"endDate,omitempty" doc:"Last day of the window, required for custom periods"`
}

type CreateBudgetInput struct {
	Body CreateBudgetBody
}

type CreateBudgetOutput struct {
	Status int
	Body   BudgetResultBody
}

type budgetCreator interface {
	CreateBudget(ctx context.Context, create service.BudgetCreate) (*service.BudgetResult, error)
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	BudgetService   budgetCreator
	DefaultCurrency string
}

func NewCreateBudgetHandler(svc budgetCreator, defaultCurrency string) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc, DefaultCurrency: defaultCurrency}
}

func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create budget",
		Description: "Creates a budget, computing its spending from the transactions already stored.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func parseCreateBudgetInput(input *CreateBudgetInput, defaultCurrency string) (service.BudgetCreate, error) {
	body := input.Body
	period, err := service.ParseBudgetPeriod(body.Period)
	if err != nil {
		return service.BudgetCreate{}, huma.NewError(http.StatusBadRequest, "invalid period", err)
	}
	amount, err := apiutil.ParseMoney("amount", body.Amount, body.Currency, defaultCurrency)
	if err != nil {
		return service.BudgetCreate{}, err
	}
	categoryID, err := apiutil.ParseID("categoryID", body.CategoryID)
	if err != nil {
		return service.BudgetCreate{}, err
	}
	start, err := apiutil.ParseDate("startDate", body.StartDate)
	if err != nil {
		return service.BudgetCreate{}, err
	}

	var end time.Time
	if period == service.PeriodCustom {
		if body.EndDate == "" {
			return service.BudgetCreate{}, huma.Error400BadRequest("endDate is required for custom periods")
		}
		if end, err = apiutil.ParseDate("endDate", body.EndDate); err != nil {
			return service.BudgetCreate{}, err
		}
	}

	return service.BudgetCreate{
		Name:       body.Name,
		Amount:     amount,
		CategoryID: categoryID,
		Period:     period,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	create, err := parseCreateBudgetInput(input, h.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("createBudgetMs")
	res, err := h.BudgetService.CreateBudget(ctx, create)
	stopTimer()
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to create budget")
	}

	return &CreateBudgetOutput{Status: http.StatusCreated, Body: newBudgetResultBody(res)}, nil
}
