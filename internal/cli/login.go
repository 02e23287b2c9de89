package cli

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var flagAccessKey string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with your access key",
	Long: `Exchange an access key for a backend identity and persist the session.

  auditctl login --key AK-1234
  auditctl login --key AK-1234 --server https://audit.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAccessKey == "" {
			return fmt.Errorf("an access key is required, pass it with --key")
		}

		server := flagServerURL
		if server == "" {
			server = defaultServerURL
		}

		client := api.NewClient(server, "")
		resp, err := client.Login(flagAccessKey)
		if err != nil {
			if api.IsAuthError(err) {
				return fmt.Errorf("invalid access key")
			}
			return fmt.Errorf("logging in: %w", err)
		}

		role := session.ParseRole(resp.Role)
		if !role.Valid() {
			return fmt.Errorf("backend returned unknown role %q", resp.Role)
		}

		s := &session.Session{
			AccessKey: flagAccessKey,
			Role:      role,
			UserID:    resp.User.ID,
			UserName:  resp.User.Name,
			ServerURL: server,
		}
		if err := session.Save(s); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", s.UserName, role.Label())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagAccessKey, "key", "", "Access key issued by an admin")
	rootCmd.AddCommand(loginCmd)
}
