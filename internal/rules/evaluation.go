package rules

import (
	"errors"
	"strings"
)

// ErrRuleViolation is matched by every ViolationError.
var ErrRuleViolation = errors.New("rule violation")

// ViolationError reports the failed results that made an entity invalid.
type ViolationError struct {
	Failures []Result
}

func (e *ViolationError) Error() string {
	return "rule violation: " + joinMessages(e.Failures)
}

func (e *ViolationError) Unwrap() error {
	return ErrRuleViolation
}

// EvaluationResult collects every rule result for one entity.
type EvaluationResult[T any] struct {
	Entity  *T
	IsValid bool
	Results []Result
}

// Errors returns the failed results.
func (e EvaluationResult[T]) Errors() []Result {
	var out []Result
	for _, r := range e.Results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

// Warnings returns successful results flagged at Warning severity.
func (e EvaluationResult[T]) Warnings() []Result {
	var out []Result
	for _, r := range e.Results {
		if r.IsWarning() {
			out = append(out, r)
		}
	}
	return out
}

func (e EvaluationResult[T]) ErrorMessage() string {
	return joinMessages(e.Errors())
}

func (e EvaluationResult[T]) WarningMessage() string {
	return joinMessages(e.Warnings())
}

func (e EvaluationResult[T]) HasWarnings() bool {
	return len(e.Warnings()) > 0
}

// Err is nil for a valid result and a *ViolationError otherwise.
func (e EvaluationResult[T]) Err() error {
	if e.IsValid {
		return nil
	}
	return &ViolationError{Failures: e.Errors()}
}

func joinMessages(results []Result) string {
	msgs := make([]string, len(results))
	for i, r := range results {
		msgs[i] = r.Message
	}
	return strings.Join(msgs, "; ")
}

// anyFailed is the transaction validity policy: every failure invalidates.
func anyFailed(results []Result) bool {
	for _, r := range results {
		if !r.Success {
			return true
		}
	}
	return false
}

// anyBlocking is the budget validity policy: only Error and Critical failures invalidate.
func anyBlocking(results []Result) bool {
	for _, r := range results {
		if !r.Success && r.Severity >= Error {
			return true
		}
	}
	return false
}
