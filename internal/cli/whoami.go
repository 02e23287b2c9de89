package cli

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/output"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if flagJSON {
			output.JSON(map[string]string{
				"userId":   sess.UserID,
				"userName": sess.UserName,
				"role":     string(sess.Role),
				"server":   sess.ServerURL,
			})
			return nil
		}
		fmt.Printf("%s (%s)\n", sess.UserName, sess.Role.Label())
		fmt.Printf("User ID: %s\n", sess.UserID)
		fmt.Printf("Server:  %s\n", sess.ServerURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
