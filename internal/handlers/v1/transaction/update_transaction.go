package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

// UpdateTransactionBody lists the fields to change. Omitted fields are kept.
type UpdateTransactionBody struct {
	ID          string  `json:"id" format:"uuid" doc:"Transaction UUID"`
	Kind        *string `json:"kind,omitempty" enum:"income,expense" doc:"Transaction kind"`
	Description *string `json:"description,omitempty" doc:"What the transaction was for"`
	Amount      *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Currency    string  `json:"currency,omitempty" doc:"Currency of amount, defaults to the stored currency"`
	Date        *string `json:"date,omitempty" doc:"Date (2006-01-02) or RFC3339 timestamp"`
	CategoryID  *string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	Notes       *string `json:"notes,omitempty" doc:"Free-form notes"`
	Account     *string `json:"account,omitempty" doc:"Account label"`
}

type UpdateTransactionInput struct {
	Body UpdateTransactionBody
}

type UpdateTransactionOutput struct {
	Body TransactionResultBody
}

type transactionUpdater interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, update domain.TransactionUpdate) (*service.TransactionResult, error)
}

// UpdateTransactionHandler handles POST /v1/transaction/update.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/update",
		Summary:     "Update transaction",
		Description: "Applies a partial update and re-runs the transaction rules. The budget projection excludes the transaction's previous amount.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseUpdateTransactionInput needs the stored currency when the body gives
// an amount without one.
func parseUpdateTransactionInput(input *UpdateTransactionInput, storedCurrency string) (domain.TransactionUpdate, error) {
	body := input.Body
	update := domain.TransactionUpdate{
		Description: body.Description,
		Notes:       body.Notes,
		Account:     body.Account,
	}
	if body.Kind != nil {
		kind, err := domain.ParseTransactionKind(*body.Kind)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid kind", err)
		}
		update.Kind = &kind
	}
	if body.Amount != nil {
		amount, err := apiutil.ParseMoney("amount", *body.Amount, body.Currency, storedCurrency)
		if err != nil {
			return update, err
		}
		update.Amount = &amount
	}
	if body.Date != nil {
		date, err := apiutil.ParseDate("date", *body.Date)
		if err != nil {
			return update, err
		}
		update.Date = &date
	}
	if body.CategoryID != nil {
		categoryID, err := apiutil.ParseID("categoryID", *body.CategoryID)
		if err != nil {
			return update, err
		}
		update.CategoryID = &categoryID
	}
	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, err := apiutil.ParseID("id", input.Body.ID)
	if err != nil {
		return nil, err
	}

	var storedCurrency string
	if input.Body.Amount != nil && input.Body.Currency == "" {
		current, err := h.TransactionService.GetTransaction(ctx, id)
		if err != nil {
			return nil, apiutil.ServiceError(err, "failed to load transaction")
		}
		storedCurrency = current.Amount.Currency()
	}

	update, err := parseUpdateTransactionInput(input, storedCurrency)
	if err != nil {
		return nil, err
	}

	res, err := h.TransactionService.UpdateTransaction(ctx, id, update)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Body: newTransactionResultBody(res)}, nil
}
