package apiutil

import (
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/money"
)

// ParseMoney reads a decimal amount with at most money.MaxScale decimal
// places, so nothing is rounded on the way to storage. An empty currency falls back to defaultCurrency.
func ParseMoney(field, amount, currency, defaultCurrency string) (money.Money, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return money.Money{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	if err = money.CheckScale(value); err != nil {
		return money.Money{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	if currency == "" {
		currency = defaultCurrency
	}
	m, err := money.New(value, currency)
	if err != nil {
		return money.Money{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return m, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
func ParseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

// ParseOptionalDate is ParseDate for optional fields. Empty input is nil.
func ParseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
