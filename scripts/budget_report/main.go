package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/budget-rules/internal/budget"
	server_config "github.com/carson-networks/budget-rules/internal/config"
	"github.com/carson-networks/budget-rules/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "budget-report",
		Short:        "Print budget alerts, utilization and category spending",
		SilenceUsage: true,
		RunE:         runReport,
	}

	rootCmd.PersistentFlags().StringP("severity", "s", "all", "Alerts to show: all, exceeded or warning")
	rootCmd.PersistentFlags().StringP("start", "f", "", "First day of the category spending window (default: first of this month)")
	rootCmd.PersistentFlags().StringP("end", "t", "", "Last day of the category spending window (default: today)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	return rootCmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	severity, _ := cmd.Flags().GetString("severity")
	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if noColor {
		pterm.DisableStyling()
	}

	now := time.Now().UTC()
	start, end, err := spendingWindow(startFlag, endFlag, now)
	if err != nil {
		return err
	}

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Error("ProcessEnvironmentVariables")
		return err
	}

	store, err := storage.NewStorage(env)
	if err != nil {
		logrus.WithError(err).Error("storage.NewStorage")
		return err
	}
	defer store.Close()

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		logrus.WithError(err).Error("storage.Snapshot")
		return err
	}
	svc := budget.NewService(snap, snap, []budget.AggregatorOption{budget.WithWarningThreshold(env.WarningThreshold)})

	alerts, err := selectAlerts(svc, severity)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderUtilization(svc.BudgetUtilizationReport(), env.DefaultCurrency))
	fmt.Fprintln(out, renderAlerts(alerts))
	fmt.Fprintln(out, renderCategorySpending(svc.SpendingByCategory(start, end), env.DefaultCurrency))
	return nil
}
