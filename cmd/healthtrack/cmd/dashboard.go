package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/healthtrack/internal/alerts"
	"github.com/nfrund/healthtrack/internal/dashboard"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

func (c *cli) dashboardCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the health summary, weight graph, alerts and reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			v, err := dashboard.NewLoader(acc.API, slog.Default()).Load(cmd.Context(), period)
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", domain.PeriodWeek, "graph period: week, month or year")
	return cmd
}

func printDashboard(out io.Writer, v *dashboard.View) {
	if v.PartFailed(dashboard.PartSummary) || v.Summary == nil {
		fmt.Fprintln(out, "Summary unavailable")
	} else {
		s := v.Summary
		fmt.Fprintf(out, "Health score: %d\n", s.HealthScore)
		if s.LatestHealth != nil {
			fmt.Fprintf(out, "Latest: %.1f kg, BMI %.1f (%s)\n", s.LatestHealth.WeightKg, s.LatestHealth.BMI, s.BMICategory)
		}
		fmt.Fprintf(out, "Records: %d\n", s.TotalRecords)
	}

	fmt.Fprintln(out)
	printAlerts(out, v.Alerts)

	fmt.Fprintf(out, "\nWeight (%s)\n", v.Period)
	switch {
	case v.PartFailed(dashboard.PartGraph):
		fmt.Fprintln(out, "  graph unavailable")
	case len(v.Graph) == 0:
		fmt.Fprintln(out, "  no records yet")
	default:
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  DATE\tWEIGHT\tBMI")
		for _, p := range v.Graph {
			fmt.Fprintf(w, "  %s\t%.1f\t%.1f\n", p.Date, p.Weight, p.BMI)
		}
		w.Flush()
	}

	fmt.Fprintln(out, "\nReminders")
	for _, r := range v.Reminders {
		state := "on"
		if !r.IsActive {
			state = "off"
		}
		fmt.Fprintf(out, "  %s  %-3s  %s\n", r.Time, state, r.Label)
	}
}

func printAlerts(out io.Writer, list []domain.Alert) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No alerts")
		return
	}
	for _, a := range list {
		fmt.Fprintf(out, "[%s] %s\n  %s\n", strings.ToUpper(a.Priority), a.Title, a.Message)
	}
}

func (c *cli) alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List the health alerts derived from recent data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			d, err := acc.API.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			printAlerts(cmd.OutOrStdout(), alerts.Analyze(d.Snapshot()))
			return nil
		},
	}
}
