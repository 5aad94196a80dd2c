package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/internal/planner"
	"github.com/pkordes/travel-planner/internal/service"
)

func exportCmd(s *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one row per planned day as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("--format must be csv or json, got %q", format)
			}
			if err := s.open(cmd); err != nil {
				return err
			}
			rows, err := s.svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return service.WriteExportCSV(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	return cmd
}

// planCmd previews generation. It needs no storage.
func planCmd() *cobra.Command {
	var (
		days      int
		interests []string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the daily plan generated for a day count and interests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range planner.GeneratePlan(days, interests) {
				fmt.Fprintf(out, "%d. %s\n", d.Day, d.Title)
				fmt.Fprintf(out, "   activities: %s\n", strings.Join(d.Activities, "; "))
				fmt.Fprintf(out, "   places:     %s\n", strings.Join(d.Places, "; "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 3, "number of days")
	cmd.Flags().StringSliceVar(&interests, "interest", nil, fmt.Sprintf("interest, repeatable (one of %s)", strings.Join(planner.Interests(), ", ")))
	return cmd
}
