// Package money provides an immutable amount+currency value.
//
// Money never holds a negative amount: direction (income vs expense) is carried
// by the transaction kind, not by the sign. Every operation returns a new value
// and refuses to combine two different currencies.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrDivideByZero     = errors.New("divide by zero")
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// MaxScale is the number of decimal places storage keeps.
const MaxScale = 4

// Money is an amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates Money, rejecting negative amounts and empty currency codes.
func New(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount.String())
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustNew is like New but panics on error. Intended for tests and constants.
func MustNew(amount decimal.Decimal, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// FromString parses a decimal string such as "12.50".
func FromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if err := CheckScale(d); err != nil {
		return Money{}, err
	}
	return New(d, currency)
}

// CheckScale rejects amounts with more than MaxScale significant decimal
// places. Trailing zeros do not count.
func CheckScale(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MaxScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, d.String(), MaxScale)
	}
	return nil
}

// Zero returns the zero value for currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: strings.ToUpper(strings.TrimSpace(currency))}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. A negative result is an ErrInvalidAmount.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return New(m.amount.Sub(other.amount), m.currency)
}

// Multiply scales m by a non-negative factor.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	return New(m.amount.Mul(factor), m.currency)
}

// Divide splits m by a positive divisor.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivideByZero
	}
	return New(m.amount.Div(divisor), m.currency)
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.compare(other)
	return c > 0, err
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	c, err := m.compare(other)
	return c >= 0, err
}

func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.compare(other)
	return c < 0, err
}

func (m Money) LessThanOrEqual(other Money) (bool, error) {
	c, err := m.compare(other)
	return c <= 0, err
}

// Equal reports whether both values have the same currency and amount.
// Unlike the ordered comparisons it never fails.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns "12.50 USD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

// Format returns a display string with the currency symbol and thousands
// separators, e.g. "$1,234.50". Unknown currencies use the code as prefix.
func (m Money) Format() string {
	return FormatAmount(m.amount, m.currency)
}

// FormatAmount formats a raw decimal the same way as Money.Format. It accepts
// negative values, which Money itself cannot hold (e.g. a budget's remaining).
func FormatAmount(amount decimal.Decimal, currency string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	return sign + Symbol(currency) + humanize.Comma(amount.Round(2).IntPart()) + cents
}

// Symbol returns the display symbol for a currency code.
func Symbol(currency string) string {
	if s, ok := symbols[currency]; ok {
		return s
	}
	return currency + " "
}

func (m Money) compare(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
