package cli

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/output"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleAdmin); err != nil {
			return err
		}

		users, err := apiClient.GetAllUsers()
		if err != nil {
			return teardownOnAuthError(err)
		}

		if flagJSON {
			output.JSON(users)
			return nil
		}
		output.UserTable(users)
		return nil
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user NAME",
	Short: "Create an inspector or reporter (admin)",
	Long: `Create a user account. The backend generates the access key; list
users afterwards to read it.

  auditctl create-user "Jane Doe" --role inspector
  auditctl create-user "Sam Lee" --role reporter`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleAdmin); err != nil {
			return err
		}

		name := args[0]
		var err error
		switch session.ParseRole(flagUserRole) {
		case session.RoleInspector:
			err = apiClient.CreateInspector(name)
		case session.RoleReporter:
			err = apiClient.CreateReporter(name)
		default:
			return fmt.Errorf("--role must be inspector or reporter")
		}
		if err != nil {
			return teardownOnAuthError(err)
		}

		fmt.Printf("Created %s %q.\n", flagUserRole, name)
		return nil
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete-user USER_ID",
	Short: "Delete an inspector or reporter (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleAdmin); err != nil {
			return err
		}

		id := args[0]
		var err error
		switch session.ParseRole(flagUserRole) {
		case session.RoleInspector:
			err = apiClient.DeleteInspector(id)
		case session.RoleReporter:
			err = apiClient.DeleteReporter(id)
		default:
			return fmt.Errorf("--role must be inspector or reporter")
		}
		if err != nil {
			return teardownOnAuthError(err)
		}

		fmt.Println("User deleted.")
		return nil
	},
}

var flagUserRole string

func init() {
	createUserCmd.Flags().StringVar(&flagUserRole, "role", "", "Role for the user: inspector or reporter")
	deleteUserCmd.Flags().StringVar(&flagUserRole, "role", "", "Role of the user: inspector or reporter")
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(deleteUserCmd)
}
