package service

import (
	"errors"
	"fmt"

	"github.com/carson-networks/budget-rules/internal/rules"
)

var (
	ErrRuleNotFound    = errors.New("rule not found")
	ErrInvalidRuleKind = errors.New("invalid rule kind")
)

// RuleKind names which entity a rule evaluates.
type RuleKind string

const (
	RuleKindTransaction RuleKind = "transaction"
	RuleKindBudget      RuleKind = "budget"
)

func ParseRuleKind(s string) (RuleKind, error) {
	switch k := RuleKind(s); k {
	case RuleKindTransaction, RuleKindBudget:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRuleKind, s)
	}
}

// RuleInfo describes one registered rule.
type RuleInfo struct {
	Kind        RuleKind
	Name        string
	Description string
	Severity    rules.Severity
	Enabled     bool
}

// RuleService exposes the engine's rule registry.
type RuleService struct {
	engine *rules.Engine
}

func NewRuleService(engine *rules.Engine) *RuleService {
	return &RuleService{engine: engine}
}

// ListRules returns transaction rules then budget rules, each in evaluation order.
func (s *RuleService) ListRules() []RuleInfo {
	var out []RuleInfo
	for _, r := range s.engine.TransactionRules() {
		out = append(out, ruleInfo(RuleKindTransaction, r))
	}
	for _, r := range s.engine.BudgetRules() {
		out = append(out, ruleInfo(RuleKindBudget, r))
	}
	return out
}

// SetRuleEnabled toggles a rule by exact name.
func (s *RuleService) SetRuleEnabled(kind RuleKind, name string, enabled bool) (RuleInfo, error) {
	switch kind {
	case RuleKindTransaction:
		r, ok := s.engine.TransactionRule(name)
		if !ok {
			return RuleInfo{}, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
		}
		r.SetEnabled(enabled)
		return ruleInfo(kind, r), nil
	case RuleKindBudget:
		r, ok := s.engine.BudgetRule(name)
		if !ok {
			return RuleInfo{}, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
		}
		r.SetEnabled(enabled)
		return ruleInfo(kind, r), nil
	default:
		return RuleInfo{}, fmt.Errorf("%w: %q", ErrInvalidRuleKind, kind)
	}
}

// RemoveRule drops a rule by exact name. Removing an unknown name is not an error.
func (s *RuleService) RemoveRule(kind RuleKind, name string) (bool, error) {
	switch kind {
	case RuleKindTransaction:
		return s.engine.RemoveTransactionRule(name), nil
	case RuleKindBudget:
		return s.engine.RemoveBudgetRule(name), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidRuleKind, kind)
	}
}

type describedRule interface {
	Name() string
	Description() string
	Severity() rules.Severity
	Enabled() bool
}

func ruleInfo(kind RuleKind, r describedRule) RuleInfo {
	return RuleInfo{
		Kind:        kind,
		Name:        r.Name(),
		Description: r.Description(),
		Severity:    r.Severity(),
		Enabled:     r.Enabled(),
	}
}
