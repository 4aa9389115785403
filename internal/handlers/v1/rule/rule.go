// Package rule holds the /v1/rule endpoints for inspecting and toggling
// the rule engine's registry.
package rule

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-rules/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/service"
)

// Rule is the API response model for a registered rule.
type Rule struct {
	Kind        string `json:"kind" enum:"transaction,budget" doc:"Entity the rule evaluates"`
	Name        string `json:"name" doc:"Unique rule name"`
	Description string `json:"description" doc:"What the rule checks"`
	Severity    string `json:"severity" enum:"info,warning,error,critical" doc:"Severity of a failure"`
	Enabled     bool   `json:"enabled" doc:"Disabled rules are skipped"`
}

func newRule(info service.RuleInfo) Rule {
	return Rule{
		Kind:        string(info.Kind),
		Name:        info.Name,
		Description: info.Description,
		Severity:    info.Severity.String(),
		Enabled:     info.Enabled,
	}
}

type ruleService interface {
	ListRules() []service.RuleInfo
	SetRuleEnabled(kind service.RuleKind, name string, enabled bool) (service.RuleInfo, error)
	RemoveRule(kind service.RuleKind, name string) (bool, error)
}

// Handler serves every /v1/rule operation.
type Handler struct {
	RuleService ruleService
}

func NewHandler(svc ruleService) *Handler {
	return &Handler{RuleService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-rules",
		Method:      http.MethodGet,
		Path:        "/v1/rule",
		Summary:     "List rules",
		Description: "Lists transaction rules then budget rules, each in evaluation order.",
		Tags:        []string{"Rules"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "set-rule-enabled",
		Method:      http.MethodPost,
		Path:        "/v1/rule/{kind}/{name}/enabled",
		Summary:     "Enable or disable a rule",
		Tags:        []string{"Rules"},
	}, h.setEnabled)

	huma.Register(api, huma.Operation{
		OperationID:   "remove-rule",
		Method:        http.MethodDelete,
		Path:          "/v1/rule/{kind}/{name}",
		Summary:       "Remove a rule",
		Description:   "Removes a rule by exact name. Removing an unknown rule is not an error.",
		Tags:          []string{"Rules"},
		DefaultStatus: http.StatusOK,
	}, h.remove)
}

type ListRulesOutput struct {
	Body struct {
		Rules []Rule `json:"rules" doc:"Registered rules"`
	}
}

func (h *Handler) list(_ context.Context, _ *struct{}) (*ListRulesOutput, error) {
	infos := h.RuleService.ListRules()
	out := &ListRulesOutput{}
	out.Body.Rules = make([]Rule, len(infos))
	for i, info := range infos {
		out.Body.Rules[i] = newRule(info)
	}
	return out, nil
}

type RulePathInput struct {
	Kind string `path:"kind" enum:"transaction,budget" doc:"Rule kind"`
	Name string `path:"name" doc:"Exact, case-sensitive rule name"`
}

type SetRuleEnabledInput struct {
	Kind string `path:"kind" enum:"transaction,budget" doc:"Rule kind"`
	Name string `path:"name" doc:"Exact, case-sensitive rule name"`
	Body struct {
		Enabled bool `json:"enabled" doc:"New enabled state"`
	}
}

type SetRuleEnabledOutput struct {
	Body Rule
}

func (h *Handler) setEnabled(ctx context.Context, input *SetRuleEnabledInput) (*SetRuleEnabledOutput, error) {
	kind, err := service.ParseRuleKind(input.Kind)
	if err != nil {
		return nil, apiutil.ServiceError(err, "invalid rule kind")
	}
	info, err := h.RuleService.SetRuleEnabled(kind, input.Name, input.Body.Enabled)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to update rule")
	}
	logging.GetLogData(ctx).AddData("rule", info.Name)
	logging.GetLogData(ctx).AddData("enabled", info.Enabled)
	return &SetRuleEnabledOutput{Body: newRule(info)}, nil
}

type RemoveRuleOutput struct {
	Body struct {
		Removed bool `json:"removed" doc:"False if no rule had that name"`
	}
}

func (h *Handler) remove(ctx context.Context, input *RulePathInput) (*RemoveRuleOutput, error) {
	kind, err := service.ParseRuleKind(input.Kind)
	if err != nil {
		return nil, apiutil.ServiceError(err, "invalid rule kind")
	}
	removed, err := h.RuleService.RemoveRule(kind, input.Name)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to remove rule")
	}
	logging.GetLogData(ctx).AddData("ruleRemoved", removed)
	out := &RemoveRuleOutput{}
	out.Body.Removed = removed
	return out, nil
}
