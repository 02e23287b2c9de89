package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/bulkops"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/selection"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var flagForce bool

var rmCmd = &cobra.Command{
	Use:   "rm REPORT_ID FILE_NAME...",
	Short: "Delete files from a report",
	Long: `Delete one or more files from your side of a report. Deletions run
in parallel and every file gets its own outcome; the listing is
refreshed afterwards either way.

  auditctl rm 42f1... scan.pdf notes.txt
  auditctl rm 42f1... scan.pdf --force`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleInspector, session.RoleReporter); err != nil {
			return err
		}

		reportID := args[0]
		names := selection.New(args[1:]...).Names()

		if !flagForce {
			fmt.Printf("Delete %d file(s) from report %s? [y/N] ", len(names), reportID)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		result, listing, err := bulkops.New().Delete(apiClient, roleSpace(), reportID, names)
		if err != nil {
			return teardownOnAuthError(err)
		}

		fmt.Println(result.Summary())
		for _, f := range result.Failed {
			fmt.Printf("  failed: %s: %v\n", f.Name, f.Err)
		}
		fmt.Printf("Report now has %d file(s).\n", len(listing))

		if !result.AllSucceeded() {
			return fmt.Errorf("%d file(s) could not be deleted", len(result.Failed))
		}
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVar(&flagForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}
