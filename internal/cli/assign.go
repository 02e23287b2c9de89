package cli

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/assign"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var flagReporterID string

var assignCmd = &cobra.Command{
	Use:   "assign REPORT_ID...",
	Short: "Assign reports to a reporter (admin)",
	Long: `Assign one or more reports to a reporter. Each report gets its own
outcome; a failure on one does not roll back the others.

  auditctl assign 42f1... 97b0... --reporter 11aa...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleAdmin); err != nil {
			return err
		}

		outcome, err := assign.New(apiClient).Assign(flagReporterID, args)
		if err != nil {
			if err == assign.ErrNoReporter {
				return fmt.Errorf("--reporter is required")
			}
			return teardownOnAuthError(err)
		}

		fmt.Println(outcome.Summary("assigned"))
		for _, f := range outcome.Failed {
			fmt.Printf("  failed: %s: %v\n", f.ReportID, f.Err)
		}
		if !outcome.AllSucceeded() {
			return fmt.Errorf("%d report(s) could not be assigned", len(outcome.Failed))
		}
		return nil
	},
}

var unassignCmd = &cobra.Command{
	Use:   "unassign REPORT_ID...",
	Short: "Remove reports from their reporters (admin)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleAdmin); err != nil {
			return err
		}

		outcome, err := assign.New(apiClient).Unassign(args)
		if err != nil {
			return teardownOnAuthError(err)
		}

		fmt.Println(outcome.Summary("unassigned"))
		for _, f := range outcome.Failed {
			fmt.Printf("  failed: %s: %v\n", f.ReportID, f.Err)
		}
		if !outcome.AllSucceeded() {
			return fmt.Errorf("%d report(s) could not be unassigned", len(outcome.Failed))
		}
		return nil
	},
}

func init() {
	assignCmd.Flags().StringVar(&flagReporterID, "reporter", "", "Reporter user ID to assign to")
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(unassignCmd)
}
