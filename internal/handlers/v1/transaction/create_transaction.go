package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Kind        string `json:"kind" enum:"income,expense" doc:"Transaction kind"`
	Description string `json:"description" minLength:"1" doc:"What the transaction was for"`
	Amount      string `json:"amount" doc:"Positive decimal amount"`
	Currency    string `json:"currency,omitempty" doc:"ISO currency code, defaults to the server currency"`
	Date        string `json:"date,omitempty" doc:"Date (2006-01-02) or RFC3339 timestamp, defaults to now"`
	CategoryID  string `json:"categoryID" format:"uuid" doc:"Category UUID"`
	Notes       string `json:"notes,omitempty" doc:"Free-form notes"`
	Account     string `json:"account,omitempty" doc:"Account label"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   TransactionResultBody
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (*service.TransactionResult, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	DefaultCurrency    string
	now                func() time.Time
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator, defaultCurrency string) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, DefaultCurrency: defaultCurrency, now: time.Now}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Validates a transaction against the rule engine and stores it. Budget projections are reported but do not block the write.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput, defaultCurrency string, now time.Time) (service.TransactionCreate, error) {
	kind, err := domain.ParseTransactionKind(input.Body.Kind)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}
	amount, err := apiutil.ParseMoney("amount", input.Body.Amount, input.Body.Currency, defaultCurrency)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}

	date := now
	if input.Body.Date != "" {
		if date, err = apiutil.ParseDate("date", input.Body.Date); err != nil {
			return service.TransactionCreate{}, err
		}
	}

	return service.TransactionCreate{
		Kind:        kind,
		Description: input.Body.Description,
		Amount:      amount,
		Date:        date,
		CategoryID:  categoryID,
		Notes:       input.Body.Notes,
		Account:     input.Body.Account,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input, h.DefaultCurrency, h.now())
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createTransactionMs")
	res, err := h.TransactionService.CreateTransaction(ctx, create)
	stopTimer()
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   newTransactionResultBody(res),
	}, nil
}
