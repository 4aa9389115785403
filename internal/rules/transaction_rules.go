package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/carson-networks/budget-rules/internal/domain"
)

const (
	PositiveAmountRuleName      = "PositiveAmount"
	DescriptionRequiredRuleName = "DescriptionRequired"
	FutureDateRuleName          = "FutureDate"
)

// DefaultFutureDateLimitDays is how far ahead a transaction may be dated
// before it is flagged.
const DefaultFutureDateLimitDays = 7

// PositiveAmountRule fails transactions whose amount is not greater than zero.
func PositiveAmountRule() *Template[domain.Transaction] {
	return NewTemplate(PositiveAmountRuleName, "Transaction amount must be greater than zero", Error,
		func(tx *domain.Transaction) Result {
			if !tx.Amount.IsPositive() {
				return Fail("amount must be greater than zero", Error)
			}
			return Pass("amount is positive")
		})
}

// DescriptionRequiredRule fails transactions with a blank description.
func DescriptionRequiredRule() *Template[domain.Transaction] {
	return NewTemplate(DescriptionRequiredRuleName, "Transaction must have a description", Error,
		func(tx *domain.Transaction) Result {
			if strings.TrimSpace(tx.Description) == "" {
				return Fail("description is required", Error)
			}
			return Pass("description present")
		})
}

// FutureDateRule warns, without failing, when a transaction is dated more than
// limitDays after today.
func FutureDateRule(limitDays int, now func() time.Time) *Template[domain.Transaction] {
	return NewTemplate(FutureDateRuleName, fmt.Sprintf("Transaction date should not be more than %d days in the future", limitDays), Warning,
		func(tx *domain.Transaction) Result {
			limit := domain.Day(now()).AddDate(0, 0, limitDays)
			if domain.Day(tx.Date).After(limit) {
				return PassWithWarning(fmt.Sprintf("transaction is dated %s, more than %d days in the future",
					tx.Date.Format(time.DateOnly), limitDays))
			}
			return Pass("date is within range")
		})
}
