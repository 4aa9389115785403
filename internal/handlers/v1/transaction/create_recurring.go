package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

// CreateRecurringBody describes a repeating transaction and how far to materialize it.
type CreateRecurringBody struct {
	Kind        string `json:"kind" enum:"income,expense" doc:"Transaction kind"`
	Description string `json:"description" minLength:"1" doc:"What the transaction is for"`
	Amount      string `json:"amount" doc:"Positive decimal amount per occurrence"`
	Currency    string `json:"currency,omitempty" doc:"ISO currency code, defaults to the server currency"`
	CategoryID  string `json:"categoryID" format:"uuid" doc:"Category UUID"`
	Notes       string `json:"notes,omitempty" doc:"Free-form notes"`
	Account     string `json:"account,omitempty" doc:"Account label"`
	Frequency   string `json:"frequency" enum:"daily,weekly,monthly,yearly" doc:"Repeat interval"`
	StartDate   string `json:"startDate" doc:"First occurrence"`
	EndDate     string `json:"endDate,omitempty" doc:"Last possible occurrence, inclusive"`
	Until       string `json:"until" doc:"Materialize occurrences up to this date, inclusive"`
}

type CreateRecurringInput struct {
	Body CreateRecurringBody
}

type CreateRecurringResponse struct {
	Created []TransactionResultBody `json:"created" doc:"One entry per stored occurrence"`
}

type CreateRecurringOutput struct {
	Status int
	Body   CreateRecurringResponse
}

type recurringCreator interface {
	CreateRecurringTransactions(ctx context.Context, r domain.RecurringTransaction, until time.Time) ([]service.TransactionResult, error)
}

// CreateRecurringHandler handles POST /v1/transaction/recurring.
type CreateRecurringHandler struct {
	TransactionService recurringCreator
	DefaultCurrency    string
}

func NewCreateRecurringHandler(svc recurringCreator, defaultCurrency string) *CreateRecurringHandler {
	return &CreateRecurringHandler{TransactionService: svc, DefaultCurrency: defaultCurrency}
}

func (h *CreateRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-recurring-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/recurring",
		Summary:     "Create recurring transactions",
		Description: "Stores one transaction per occurrence from startDate through the earlier of until and endDate. Either every occurrence is stored or none is. At most 366 occurrences per request.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateRecurringInput(input *CreateRecurringInput, defaultCurrency string) (domain.RecurringTransaction, time.Time, error) {
	body := input.Body
	var r domain.RecurringTransaction

	kind, err := domain.ParseTransactionKind(body.Kind)
	if err != nil {
		return r, time.Time{}, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}
	frequency, err := domain.ParseFrequency(body.Frequency)
	if err != nil {
		return r, time.Time{}, huma.NewError(http.StatusBadRequest, "invalid frequency", err)
	}
	amount, err := apiutil.ParseMoney("amount", body.Amount, body.Currency, defaultCurrency)
	if err != nil {
		return r, time.Time{}, err
	}
	categoryID, err := apiutil.ParseID("categoryID", body.CategoryID)
	if err != nil {
		return r, time.Time{}, err
	}
	start, err := apiutil.ParseDate("startDate", body.StartDate)
	if err != nil {
		return r, time.Time{}, err
	}
	until, err := apiutil.ParseDate("until", body.Until)
	if err != nil {
		return r, time.Time{}, err
	}
	var end time.Time
	if body.EndDate != "" {
		if end, err = apiutil.ParseDate("endDate", body.EndDate); err != nil {
			return r, time.Time{}, err
		}
	}

	r = domain.RecurringTransaction{
		Template: domain.Transaction{
			Kind:        kind,
			Description: body.Description,
			Amount:      amount,
			CategoryID:  categoryID,
			Notes:       body.Notes,
			Account:     body.Account,
		},
		Frequency: frequency,
		StartDate: start,
		EndDate:   end,
	}

	if _, err = r.Occurrences(until, domain.MaxOccurrences); err != nil {
		return r, time.Time{}, huma.Error400BadRequest(err.Error())
	}
	return r, until, nil
}

func (h *CreateRecurringHandler) handle(ctx context.Context, input *CreateRecurringInput) (*CreateRecurringOutput, error) {
	r, until, err := parseCreateRecurringInput(input, h.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	results, err := h.TransactionService.CreateRecurringTransactions(ctx, r, until)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to create recurring transactions")
	}

	resp := CreateRecurringResponse{Created: make([]TransactionResultBody, len(results))}
	for i := range results {
		resp.Created[i] = newTransactionResultBody(&results[i])
	}
	return &CreateRecurringOutput{Status: http.StatusCreated, Body: resp}, nil
}
