package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(s string) Money {
	return MustNew(decimal.RequireFromString(s), "USD")
}

// -- Construction tests --

func TestNew_RejectsNegativeAmount(t *testing.T) {
	_, err := New(decimal.RequireFromString("-5"), "USD")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNew_RejectsEmptyCurrency(t *testing.T) {
	_, err := New(decimal.NewFromInt(5), "  ")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestNew_NormalizesCurrency(t *testing.T) {
	m, err := New(decimal.NewFromInt(5), " eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", m.Currency())
}

func TestFromString(t *testing.T) {
	m, err := FromString("12.50", "USD")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("12.5")))

	_, err = FromString("abc", "USD")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFromString_RejectsMoreThanFourDecimals(t *testing.T) {
	_, err := FromString("1.23456", "USD")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	m, err := FromString("1.23450", "USD")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("1.2345")))
}

func TestZero(t *testing.T) {
	z := Zero("usd")
	assert.True(t, z.IsZero())
	assert.Equal(t, "USD", z.Currency())
}

// -- Arithmetic tests --

func TestAdd(t *testing.T) {
	sum, err := usd("10.25").Add(usd("4.75"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(usd("15")))
}

func TestAdd_IsCommutativeAndAssociative(t *testing.T) {
	a, b, c := usd("1.10"), usd("2.20"), usd("3.30")

	ab, _ := a.Add(b)
	ba, _ := b.Add(a)
	assert.True(t, ab.Equal(ba))

	abc, _ := ab.Add(c)
	bc, _ := b.Add(c)
	aBC, _ := a.Add(bc)
	assert.True(t, abc.Equal(aBC))
}

func TestCrossCurrencyOperationsFail(t *testing.T) {
	eur := MustNew(decimal.NewFromInt(1), "EUR")
	a := usd("1")

	_, err := a.Add(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.Subtract(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.GreaterThan(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.LessThan(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.GreaterThanOrEqual(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.LessThanOrEqual(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	assert.False(t, a.Equal(eur))
}

func TestSubtract(t *testing.T) {
	diff, err := usd("10").Subtract(usd("4"))
	require.NoError(t, err)
	assert.True(t, diff.Equal(usd("6")))

	_, err = usd("4").Subtract(usd("10"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMultiplyAndDivide(t *testing.T) {
	m, err := usd("10").Multiply(decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.True(t, m.Equal(usd("15")))

	_, err = usd("10").Multiply(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	d, err := usd("10").Divide(decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, d.Equal(usd("2.5")))

	_, err = usd("10").Divide(decimal.Zero)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestComparisons(t *testing.T) {
	gt, err := usd("2").GreaterThan(usd("1"))
	require.NoError(t, err)
	assert.True(t, gt)

	lt, _ := usd("2").LessThan(usd("1"))
	assert.False(t, lt)

	gte, _ := usd("2").GreaterThanOrEqual(usd("2"))
	assert.True(t, gte)

	lte, _ := usd("2").LessThanOrEqual(usd("2.01"))
	assert.True(t, lte)
}

// -- Formatting tests --

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.50", usd("1234.5").Format())
	assert.Equal(t, "12.50 USD", usd("12.5").String())
	assert.Equal(t, "-$50.00", FormatAmount(decimal.NewFromInt(-50), "USD"))
	assert.Equal(t, "CHF 3.00", FormatAmount(decimal.NewFromInt(3), "CHF"))
}

func TestFormat_LargeAmountsKeepEveryDigit(t *testing.T) {
	assert.Equal(t, "$12,345,678,901,234,567.89", usd("12345678901234567.89").Format())
	assert.Equal(t, "-$999,999,999,999,999.99", FormatAmount(decimal.RequireFromString("-999999999999999.99"), "USD"))
}

func TestFormat_RoundsToCents(t *testing.T) {
	assert.Equal(t, "$1.00", usd("0.999").Format())
	assert.Equal(t, "$1,000.00", usd("999.995").Format())
	assert.Equal(t, "$0.12", usd("0.1234").Format())
}
