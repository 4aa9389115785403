// Package transaction holds the /v1/transaction endpoints.
package transaction

import (
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

// TransactionResultBody is returned by every endpoint that evaluates a transaction.
type TransactionResultBody struct {
	Transaction      apiutil.Transaction `json:"transaction" doc:"The transaction"`
	Evaluation       apiutil.Evaluation  `json:"evaluation" doc:"Transaction rule results"`
	BudgetEvaluation apiutil.Evaluation  `json:"budgetEvaluation" doc:"Projection against each covering budget"`
}

func newTransactionResultBody(res *service.TransactionResult) TransactionResultBody {
	return TransactionResultBody{
		Transaction:      apiutil.NewTransaction(res.Transaction),
		Evaluation:       apiutil.NewEvaluation(res.Evaluation),
		BudgetEvaluation: apiutil.NewEvaluation(res.BudgetEvaluation),
	}
}
