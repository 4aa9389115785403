// Package budget holds the /v1/budget endpoints.
package budget

import (
	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/service"
)

// BudgetResultBody is a budget with its rule evaluation.
type BudgetResultBody struct {
	Budget     apiutil.Budget     `json:"budget" doc:"The budget with current spending"`
	Evaluation apiutil.Evaluation `json:"evaluation" doc:"Budget rule results"`
}

func newBudgetResultBody(res *service.BudgetResult) BudgetResultBody {
	return BudgetResultBody{
		Budget:     apiutil.NewBudget(res.Budget),
		Evaluation: apiutil.NewEvaluation(res.Evaluation),
	}
}
