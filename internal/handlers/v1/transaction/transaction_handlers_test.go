package transaction

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
	"github.com/carson-networks/budget-rules/internal/service"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

func usd(s string) money.Money {
	return money.MustNew(decimal.RequireFromString(s), "USD")
}

// -- GetTransaction tests --

func TestHTTP_GetTransaction_Success(t *testing.T) {
	tx := makeTransactions(1, fixedNow)[0]
	mockSvc := new(mockTransactionService)
	mockSvc.On("GetTransaction", mock.Anything, tx.ID).Return(&tx, nil)

	_, api := humatest.New(t)
	NewGetTransactionHandler(mockSvc).Register(api)
	resp := api.Get("/v1/transaction/" + tx.ID.String())

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), tx.ID.String())
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("GetTransaction", mock.Anything, id).Return(nil, sqlconfig.ErrNotFound)

	_, api := humatest.New(t)
	NewGetTransactionHandler(mockSvc).Register(api)
	resp := api.Get("/v1/transaction/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

// -- UpdateTransaction tests --

func TestParseUpdateTransactionInput_OnlySetFields(t *testing.T) {
	desc := "Dinner"
	amount := "40"

	update, err := parseUpdateTransactionInput(&UpdateTransactionInput{
		Body: UpdateTransactionBody{Description: &desc, Amount: &amount},
	}, "EUR")

	require.NoError(t, err)
	assert.Equal(t, "Dinner", *update.Description)
	assert.Equal(t, "EUR", update.Amount.Currency(), "falls back to the stored currency")
	assert.Nil(t, update.Kind)
	assert.Nil(t, update.Date)
	assert.Nil(t, update.CategoryID)
}

func TestHTTP_UpdateTransaction_AmountUsesStoredCurrency(t *testing.T) {
	stored := makeTransactions(1, fixedNow)[0]
	stored.Amount = money.MustNew(decimal.NewFromInt(5), "EUR")

	mockSvc := new(mockTransactionService)
	mockSvc.On("GetTransaction", mock.Anything, stored.ID).Return(&stored, nil)
	mockSvc.On("UpdateTransaction", mock.Anything, stored.ID, mock.MatchedBy(func(u domain.TransactionUpdate) bool {
		return u.Amount != nil && u.Amount.Currency() == "EUR" && u.Amount.Amount().Equal(decimal.NewFromInt(9))
	})).Return(&service.TransactionResult{Transaction: stored}, nil)

	_, api := humatest.New(t)
	NewUpdateTransactionHandler(mockSvc).Register(api)
	amount := "9"
	resp := api.Post("/v1/transaction/update", UpdateTransactionBody{ID: stored.ID.String(), Amount: &amount})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("UpdateTransaction", mock.Anything, id, mock.Anything).Return(nil, sqlconfig.ErrNotFound)

	_, api := humatest.New(t)
	NewUpdateTransactionHandler(mockSvc).Register(api)
	notes := "n"
	resp := api.Post("/v1/transaction/update", UpdateTransactionBody{ID: id.String(), Notes: &notes})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertNotCalled(t, "GetTransaction")
}

// -- EvaluateTransaction tests --

func TestParseEvaluateTransactionInput_Defaults(t *testing.T) {
	tx, err := parseEvaluateTransactionInput(&EvaluateTransactionInput{}, "USD", fixedNow)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, domain.Expense, tx.Kind)
	assert.True(t, tx.Amount.IsZero())
	assert.Equal(t, fixedNow, tx.Date)
}

func TestHTTP_EvaluateTransaction_PassesCandidate(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("EvaluateTransaction", mock.Anything, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.CategoryID == categoryID && tx.Amount.Equal(usd("50")) && tx.Description == ""
	})).Return(&service.TransactionResult{}, nil)

	_, api := humatest.New(t)
	NewEvaluateTransactionHandler(mockSvc, "USD").Register(api)
	resp := api.Post("/v1/transaction/evaluate", EvaluateTransactionBody{
		Amount:     "50",
		CategoryID: categoryID.String(),
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

// -- CreateRecurring tests --

func recurringBody(categoryID uuid.UUID) CreateRecurringBody {
	return CreateRecurringBody{
		Kind:        "expense",
		Description: "Gym",
		Amount:      "30",
		CategoryID:  categoryID.String(),
		Frequency:   "monthly",
		StartDate:   "2025-01-31",
		Until:       "2025-04-30",
	}
}

func TestParseCreateRecurringInput(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())

	r, until, err := parseCreateRecurringInput(&CreateRecurringInput{Body: recurringBody(categoryID)}, "USD")

	require.NoError(t, err)
	assert.Equal(t, domain.Monthly, r.Frequency)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), until)
	assert.Equal(t, "Gym", r.Template.Description)
	assert.True(t, r.EndDate.IsZero())
}

func TestParseCreateRecurringInput_TooManyOccurrences(t *testing.T) {
	body := recurringBody(uuid.Must(uuid.NewV4()))
	body.Frequency = "daily"
	body.Until = "2030-01-01"

	_, _, err := parseCreateRecurringInput(&CreateRecurringInput{Body: body}, "USD")
	assert.ErrorContains(t, err, "more than 366")
}

func TestHTTP_CreateRecurring_HugeRangeIsBadRequest(t *testing.T) {
	body := recurringBody(uuid.Must(uuid.NewV4()))
	body.Frequency = "daily"
	body.StartDate = "0001-01-01"
	body.Until = "9999-12-31"

	mockSvc := new(mockTransactionService)
	_, api := humatest.New(t)
	NewCreateRecurringHandler(mockSvc, "USD").Register(api)
	resp := api.Post("/v1/transaction/recurring", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateRecurringTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateRecurring_Success(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())
	results := []service.TransactionResult{
		{Transaction: makeTransactions(1, fixedNow)[0]},
		{Transaction: makeTransactions(1, fixedNow)[0]},
	}

	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateRecurringTransactions", mock.Anything, mock.Anything, mock.Anything).Return(results, nil)

	_, api := humatest.New(t)
	NewCreateRecurringHandler(mockSvc, "USD").Register(api)
	resp := api.Post("/v1/transaction/recurring", recurringBody(categoryID))

	require.Equal(t, http.StatusCreated, resp.Code)
	var body CreateRecurringResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Created, 2)
	mockSvc.AssertExpectations(t)
}
