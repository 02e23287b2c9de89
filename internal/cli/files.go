package cli

import (
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/output"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files REPORT_ID",
	Short: "List a report's files",
	Long: `List the files in your side of a report: raw files for inspectors,
final files for reporters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleInspector, session.RoleReporter); err != nil {
			return err
		}

		names, err := listFilesForRole(args[0])
		if err != nil {
			return teardownOnAuthError(err)
		}

		if flagJSON {
			output.JSON(names)
			return nil
		}
		output.FileList(names)
		return nil
	},
}

func listFilesForRole(reportID string) ([]string, error) {
	if sess.Role == session.RoleInspector {
		return apiClient.RawReportFiles(reportID)
	}
	return apiClient.FinalReportFiles(reportID)
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
