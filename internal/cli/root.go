// Package cli implements the auditctl command set: a terminal front-end
// for the audit backend using the same persisted session an operator
// would get from the web login.
package cli

import (
	"fmt"
	"os"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:5000"

var (
	flagJSON      bool
	flagServerURL string

	sess      *session.Session
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "auditctl",
	Short: "auditctl — manage audit reports from the terminal",
	Long: `auditctl lets inspectors, reporters, and admins work with the audit
backend without the web UI.

Get started:
  auditctl login --key KEY    Authenticate with your access key
  auditctl reports            List your reports
  auditctl upload REPORT f.pdf  Upload files to a report`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		sess, err = session.Load()
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}
		if sess != nil {
			server := sess.ServerURL
			if flagServerURL != "" {
				server = flagServerURL
			}
			if server == "" {
				server = defaultServerURL
			}
			apiClient = api.NewClient(server, sess.AccessKey)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override backend URL (default: from session or "+defaultServerURL+")")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func requireAuth() error {
	if sess == nil {
		return fmt.Errorf("not authenticated — run \"auditctl login\" first")
	}
	return nil
}

func requireRole(roles ...session.Role) error {
	if err := requireAuth(); err != nil {
		return err
	}
	for _, r := range roles {
		if sess.Role == r {
			return nil
		}
	}
	return fmt.Errorf("this command needs the %s role (you are logged in as %s)", roleNames(roles), sess.Role)
}

func roleNames(roles []session.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " or "
		}
		out += string(r)
	}
	return out
}

// teardownOnAuthError clears the stored session when the backend no
// longer accepts the access key.
func teardownOnAuthError(err error) error {
	if api.IsAuthError(err) {
		_ = session.Clear()
		return fmt.Errorf("session rejected by the backend, run \"auditctl login\" again")
	}
	return err
}
