// Package apiutil holds the request parsing, response models and error
// mapping shared by the v1 handlers.
package apiutil

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/service"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

var badRequest = []error{
	money.ErrInvalidAmount,
	money.ErrInvalidCurrency,
	money.ErrCurrencyMismatch,
	domain.ErrEmptyDescription,
	domain.ErrMissingDate,
	domain.ErrMissingCategory,
	domain.ErrInvalidKind,
	domain.ErrInvalidFrequency,
	domain.ErrTooManyOccurrences,
	domain.ErrEmptyName,
	domain.ErrInvalidDateRange,
	service.ErrInvalidRuleKind,
}

var notFound = []error{
	sqlconfig.ErrNotFound,
	budget.ErrBudgetNotFound,
	service.ErrRuleNotFound,
}

// ServiceError maps a service error onto an HTTP status. Rule violations are
// 422 with one detail per failed rule. Anything unrecognised is a 500 with msg.
func ServiceError(err error, msg string) error {
	var violation *rules.ViolationError
	if errors.As(err, &violation) {
		details := make([]error, len(violation.Failures))
		for i, f := range violation.Failures {
			details[i] = &huma.ErrorDetail{
				Message:  f.Message,
				Location: f.RuleName,
				Value:    f.Severity.String(),
			}
		}
		return huma.NewError(http.StatusUnprocessableEntity, violation.Error(), details...)
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return huma.Error404NotFound(err.Error())
		}
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return huma.Error400BadRequest(err.Error())
		}
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}
