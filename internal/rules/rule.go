// Package rules holds pluggable validation rules for transactions and budgets
// and the engine that runs them.
package rules

import (
	"sync/atomic"
)

// Severity ranks how serious a rule finding is.
type Severity int8

const (
	Info Severity = iota
	Warning
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Result is the verdict of one rule evaluation.
type Result struct {
	Success  bool
	Message  string
	Severity Severity
	RuleName string
}

func Pass(message string) Result {
	return Result{Success: true, Message: message, Severity: Info}
}

// PassWithWarning succeeds but flags the result for the caller's attention.
func PassWithWarning(message string) Result {
	return Result{Success: true, Message: message, Severity: Warning}
}

func Fail(message string, severity Severity) Result {
	return Result{Success: false, Message: message, Severity: severity}
}

// IsWarning is true for successful results flagged at Warning severity.
func (r Result) IsWarning() bool {
	return r.Success && r.Severity == Warning
}

// Rule evaluates one entity type.
type Rule[T any] interface {
	Name() string
	Description() string
	Severity() Severity
	Enabled() bool
	SetEnabled(enabled bool)
	Evaluate(entity *T) Result
}

// Meta carries the descriptive part of a rule. Enabled is safe for concurrent use.
type Meta struct {
	name        string
	description string
	severity    Severity
	disabled    atomic.Bool
}

func (m *Meta) Name() string {
	return m.name
}

func (m *Meta) Description() string {
	return m.description
}

func (m *Meta) Severity() Severity {
	return m.severity
}

func (m *Meta) Enabled() bool {
	return !m.disabled.Load()
}

func (m *Meta) SetEnabled(enabled bool) {
	m.disabled.Store(!enabled)
}

// Template runs the shared evaluation lifecycle around Check:
//
//  1. a disabled rule passes with an informational message
//  2. a nil entity fails at Error severity
//  3. Before may short-circuit with its own result
//  4. Check produces the result
//  5. After observes the result; it cannot change it
//
// Concrete rules only supply Check (and optionally the hooks).
type Template[T any] struct {
	Meta
	Check  func(entity *T) Result
	Before func(entity *T) (Result, bool)
	After  func(entity *T, result Result)
}

var _ Rule[struct{}] = (*Template[struct{}])(nil)

// NewTemplate builds a rule from its metadata and check function.
func NewTemplate[T any](name, description string, severity Severity, check func(*T) Result) *Template[T] {
	t := &Template[T]{Check: check}
	t.name = name
	t.description = description
	t.severity = severity
	return t
}

func (t *Template[T]) Evaluate(entity *T) Result {
	if !t.Enabled() {
		return t.stamp(Pass("rule is disabled"))
	}
	if entity == nil {
		return t.stamp(Fail("entity required", Error))
	}
	if t.Before != nil {
		if r, stop := t.Before(entity); stop {
			return t.stamp(r)
		}
	}
	result := t.stamp(t.Check(entity))
	if t.After != nil {
		t.After(entity, result)
	}
	return result
}

func (t *Template[T]) stamp(r Result) Result {
	r.RuleName = t.Name()
	return r
}
