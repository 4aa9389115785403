package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
)

type alertSource interface {
	AllBudgetAlerts() []budget.Alert
	ExceededBudgets() []budget.Alert
	WarningBudgets() []budget.Alert
}

func selectAlerts(svc alertSource, severity string) ([]budget.Alert, error) {
	switch strings.ToLower(severity) {
	case "", "all":
		return svc.AllBudgetAlerts(), nil
	case "exceeded":
		return svc.ExceededBudgets(), nil
	case "warning":
		return svc.WarningBudgets(), nil
	default:
		return nil, fmt.Errorf("unknown severity %q, want all, exceeded or warning", severity)
	}
}

// spendingWindow defaults to the current month up to today.
func spendingWindow(startFlag, endFlag string, now time.Time) (time.Time, time.Time, error) {
	start := domain.Day(now).AddDate(0, 0, 1-now.Day())
	end := domain.Day(now)

	if startFlag != "" {
		t, err := time.Parse(time.DateOnly, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--start: %w", err)
		}
		start = t
	}
	if endFlag != "" {
		t, err := time.Parse(time.DateOnly, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--end: %w", err)
		}
		end = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end %s is before --start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return start, end, nil
}

func renderUtilization(r budget.UtilizationReport, currency string) string {
	data := pterm.TableData{
		{"Budgets", "Budgeted", "Spent", "Remaining", "Used", "Exceeded", "Warning", "Healthy"},
		{
			strconv.Itoa(r.BudgetCount),
			money.FormatAmount(r.TotalBudgeted, currency),
			money.FormatAmount(r.TotalSpent, currency),
			money.FormatAmount(r.TotalRemaining, currency),
			r.OverallPercentage.StringFixed(1) + "%",
			strconv.Itoa(r.ExceededCount),
			strconv.Itoa(r.WarningCount),
			strconv.Itoa(r.HealthyCount),
		},
	}
	return pterm.DefaultBox.WithTitle("Utilization").Sprint(renderTable(data))
}

func renderAlerts(alerts []budget.Alert) string {
	if len(alerts) == 0 {
		return pterm.Success.Sprint("No budget alerts")
	}

	data := pterm.TableData{{"Severity", "Budget", "Spent", "Budgeted", "Used", "Message"}}
	for _, a := range alerts {
		s := a.Summary
		sev := a.Severity.String()
		if a.Severity == budget.AlertExceeded {
			sev = pterm.FgRed.Sprint(sev)
		} else {
			sev = pterm.FgYellow.Sprint(sev)
		}
		data = append(data, []string{
			sev,
			s.BudgetName,
			money.FormatAmount(s.ActualSpending, s.Currency),
			money.FormatAmount(s.BudgetAmount, s.Currency),
			s.PercentageUsed.StringFixed(1) + "%",
			a.Message,
		})
	}
	return renderTable(data)
}

func renderCategorySpending(spending []budget.CategorySpending, currency string) string {
	if len(spending) == 0 {
		return pterm.Info.Sprint("No expenses in the selected window")
	}

	data := pterm.TableData{{"Category", "Total", "Transactions", "Average"}}
	for _, c := range spending {
		data = append(data, []string{
			c.CategoryID.String(),
			money.FormatAmount(c.Total, currency),
			strconv.Itoa(c.TransactionCount),
			money.FormatAmount(c.Average, currency),
		})
	}
	return renderTable(data)
}

func renderTable(data pterm.TableData) string {
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return pterm.Error.Sprint(err)
	}
	return rendered
}
