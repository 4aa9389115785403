package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/money"
)

var (
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidDateRange = errors.New("end date must be after start date")
)

// DefaultWarningThreshold is the percentage of a budget that, once consumed,
// raises a warning.
var DefaultWarningThreshold = decimal.NewFromInt(80)

var hundred = decimal.NewFromInt(100)

// Budget caps spending for one category over a date window.
//
// CurrentSpent is not maintained by the budget itself; the aggregator resets
// and recomputes it from transactions on demand.
type Budget struct {
	ID           uuid.UUID
	Name         string
	Amount       money.Money
	CategoryID   uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	CurrentSpent money.Money
	IsActive     bool
}

// BudgetUpdate holds the mutable fields of a budget. Nil fields are left unchanged.
type BudgetUpdate struct {
	Name       *string
	Amount     *money.Money
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	IsActive   *bool
}

// NewBudget validates the inputs and returns an active budget with nothing spent.
func NewBudget(name string, amount money.Money, categoryID uuid.UUID, start, end time.Time) (Budget, error) {
	b := Budget{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         strings.TrimSpace(name),
		Amount:       amount,
		CategoryID:   categoryID,
		StartDate:    start,
		EndDate:      end,
		CurrentSpent: money.Zero(amount.Currency()),
		IsActive:     true,
	}
	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// NewMonthlyBudget covers start through the day before the same date next month.
func NewMonthlyBudget(name string, amount money.Money, categoryID uuid.UUID, start time.Time) (Budget, error) {
	return NewBudget(name, amount, categoryID, start, start.AddDate(0, 1, -1))
}

// NewYearlyBudget covers start through the day before the same date next year.
func NewYearlyBudget(name string, amount money.Money, categoryID uuid.UUID, start time.Time) (Budget, error) {
	return NewBudget(name, amount, categoryID, start, start.AddDate(1, 0, -1))
}

// WithID returns a copy carrying the given ID.
func (b Budget) WithID(id uuid.UUID) Budget {
	b.ID = id
	return b
}

// WithCurrentSpent returns a copy with the spent amount replaced.
func (b Budget) WithCurrentSpent(spent money.Money) Budget {
	b.CurrentSpent = spent
	return b
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: budget amount must be greater than zero", money.ErrInvalidAmount)
	}
	if b.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}
	if !b.EndDate.After(b.StartDate) {
		return ErrInvalidDateRange
	}
	if b.CurrentSpent.Currency() != b.Amount.Currency() {
		return fmt.Errorf("%w: spent in %s, budget in %s", money.ErrCurrencyMismatch, b.CurrentSpent.Currency(), b.Amount.Currency())
	}
	return nil
}

// Update applies the changes and re-validates. The receiver is untouched on error.
func (b *Budget) Update(u BudgetUpdate) error {
	next := *b
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Amount != nil {
		next.Amount = *u.Amount
		if next.CurrentSpent.Currency() != next.Amount.Currency() && next.CurrentSpent.IsZero() {
			next.CurrentSpent = money.Zero(next.Amount.Currency())
		}
	}
	if u.CategoryID != nil {
		next.CategoryID = *u.CategoryID
	}
	if u.StartDate != nil {
		next.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		next.EndDate = *u.EndDate
	}
	if u.IsActive != nil {
		next.IsActive = *u.IsActive
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*b = next
	return nil
}

// Remaining is amount minus spent. It goes negative once the budget is exceeded.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Amount().Sub(b.CurrentSpent.Amount())
}

// PercentageUsed is spent/amount*100, or 0 for a zero amount.
func (b Budget) PercentageUsed() decimal.Decimal {
	return Percentage(b.CurrentSpent.Amount(), b.Amount.Amount())
}

func (b Budget) IsExceeded() bool {
	return b.CurrentSpent.Amount().GreaterThan(b.Amount.Amount())
}

// IsWarning is true at or above the default threshold while not exceeded.
func (b Budget) IsWarning() bool {
	return !b.IsExceeded() && b.PercentageUsed().GreaterThanOrEqual(DefaultWarningThreshold)
}

// Covers reports whether date falls inside the budget window. Both ends are
// inclusive and compared by calendar day.
func (b Budget) Covers(date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(b.StartDate)) && !d.After(Day(b.EndDate))
}

// IsActiveAt reports whether the budget is enabled and its window contains now.
func (b Budget) IsActiveAt(now time.Time) bool {
	return b.IsActive && b.Covers(now)
}

// Percentage returns part/whole*100, short-circuiting to 0 when whole is 0.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
