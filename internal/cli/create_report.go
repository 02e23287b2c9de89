package cli

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var createReportCmd = &cobra.Command{
	Use:   "create-report NAME",
	Short: "Create a new report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleInspector); err != nil {
			return err
		}

		name := args[0]
		if err := apiClient.CreateReport(name, sess.UserID); err != nil {
			return teardownOnAuthError(err)
		}

		fmt.Printf("Report %q created.\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createReportCmd)
}
