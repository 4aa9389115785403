package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

// EvaluateTransactionBody describes a candidate transaction. Unlike create,
// nothing is required, so every failing rule shows up in the result.
type EvaluateTransactionBody struct {
	ID          string `json:"id,omitempty" format:"uuid" doc:"Existing transaction UUID, to preview an edit"`
	Kind        string `json:"kind,omitempty" enum:"income,expense" doc:"Transaction kind, defaults to expense"`
	Description string `json:"description,omitempty" doc:"What the transaction was for"`
	Amount      string `json:"amount,omitempty" doc:"Decimal amount"`
	Currency    string `json:"currency,omitempty" doc:"ISO currency code, defaults to the server currency"`
	Date        string `json:"date,omitempty" doc:"Date (2006-01-02) or RFC3339 timestamp, defaults to now"`
	CategoryID  string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
}

type EvaluateTransactionInput struct {
	Body EvaluateTransactionBody
}

type EvaluateTransactionOutput struct {
	Body TransactionResultBody
}

type transactionEvaluator interface {
	EvaluateTransaction(ctx context.Context, tx domain.Transaction) (*service.TransactionResult, error)
}

// EvaluateTransactionHandler handles POST /v1/transaction/evaluate.
type EvaluateTransactionHandler struct {
	TransactionService transactionEvaluator
	DefaultCurrency    string
	now                func() time.Time
}

func NewEvaluateTransactionHandler(svc transactionEvaluator, defaultCurrency string) *EvaluateTransactionHandler {
	return &EvaluateTransactionHandler{TransactionService: svc, DefaultCurrency: defaultCurrency, now: time.Now}
}

func (h *EvaluateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "evaluate-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/evaluate",
		Summary:     "Evaluate transaction",
		Description: "Runs the transaction rules and budget projections without storing anything.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseEvaluateTransactionInput(input *EvaluateTransactionInput, defaultCurrency string, now time.Time) (domain.Transaction, error) {
	body := input.Body
	tx := domain.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		Kind:        domain.Expense,
		Description: body.Description,
		Date:        now,
	}
	var err error
	if body.ID != "" {
		if tx.ID, err = apiutil.ParseID("id", body.ID); err != nil {
			return tx, err
		}
	}
	if body.Kind != "" {
		if tx.Kind, err = domain.ParseTransactionKind(body.Kind); err != nil {
			return tx, huma.NewError(http.StatusBadRequest, "invalid kind", err)
		}
	}
	amount := body.Amount
	if amount == "" {
		amount = "0"
	}
	if tx.Amount, err = apiutil.ParseMoney("amount", amount, body.Currency, defaultCurrency); err != nil {
		return tx, err
	}
	if body.Date != "" {
		if tx.Date, err = apiutil.ParseDate("date", body.Date); err != nil {
			return tx, err
		}
	}
	if body.CategoryID != "" {
		if tx.CategoryID, err = apiutil.ParseID("categoryID", body.CategoryID); err != nil {
			return tx, err
		}
	}
	return tx, nil
}

func (h *EvaluateTransactionHandler) handle(ctx context.Context, input *EvaluateTransactionInput) (*EvaluateTransactionOutput, error) {
	tx, err := parseEvaluateTransactionInput(input, h.DefaultCurrency, h.now())
	if err != nil {
		return nil, err
	}
	res, err := h.TransactionService.EvaluateTransaction(ctx, tx)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to evaluate transaction")
	}
	return &EvaluateTransactionOutput{Body: newTransactionResultBody(res)}, nil
}
