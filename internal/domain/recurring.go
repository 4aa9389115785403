package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Frequency is how often a recurring transaction repeats.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// MaxOccurrences caps one expansion of a recurring transaction.
const MaxOccurrences = 366

var (
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrTooManyOccurrences = errors.New("too many occurrences")
)

// ParseFrequency accepts the frequency names in any case.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// RecurringTransaction describes a transaction that repeats from StartDate
// until EndDate (inclusive, optional).
//
// Occurrences are generated on request; nothing schedules them.
type RecurringTransaction struct {
	Template  Transaction
	Frequency Frequency
	StartDate time.Time
	EndDate   time.Time
}

func (r RecurringTransaction) Validate() error {
	if _, err := ParseFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if r.StartDate.IsZero() {
		return ErrMissingDate
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return ErrInvalidDateRange
	}
	tmpl := r.Template
	tmpl.Date = r.StartDate
	return tmpl.Validate()
}

// Occurrences lists every occurrence date from StartDate through the earlier
// of until and EndDate. Monthly and yearly dates keep the start's day of month,
// clamped to the last day of shorter months. More than limit occurrences is
// ErrTooManyOccurrences; generation stops as soon as the limit is passed.
func (r RecurringTransaction) Occurrences(until time.Time, limit int) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	last := until
	if !r.EndDate.IsZero() && r.EndDate.Before(last) {
		last = r.EndDate
	}

	var dates []time.Time
	for i := 0; ; i++ {
		next := r.nth(i)
		if next.After(last) {
			break
		}
		if len(dates) == limit {
			return nil, fmt.Errorf("%w: more than %d, narrow the range", ErrTooManyOccurrences, limit)
		}
		dates = append(dates, next)
	}
	return dates, nil
}

// Generate materializes one transaction per occurrence, each with its own ID.
func (r RecurringTransaction) Generate(until time.Time, limit int) ([]Transaction, error) {
	dates, err := r.Occurrences(until, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, len(dates))
	for i, date := range dates {
		tx := r.Template
		tx.ID = uuid.Must(uuid.NewV4())
		tx.Date = date
		out[i] = tx
	}
	return out, nil
}

func (r RecurringTransaction) nth(i int) time.Time {
	s := r.StartDate
	switch r.Frequency {
	case Daily:
		return s.AddDate(0, 0, i)
	case Weekly:
		return s.AddDate(0, 0, 7*i)
	case Monthly:
		return clampedDate(s, s.Year(), int(s.Month())+i)
	default:
		return clampedDate(s, s.Year()+i, int(s.Month()))
	}
}

// clampedDate builds year/month with s's day and clock, clamping the day to
// the month's length. month may overflow 12; time.Date normalizes it.
func clampedDate(s time.Time, year, month int) time.Time {
	first := time.Date(year, time.Month(month), 1, s.Hour(), s.Minute(), s.Second(), s.Nanosecond(), s.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	day := s.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, s.Hour(), s.Minute(), s.Second(), s.Nanosecond(), s.Location())
}
