package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/bulkops"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload REPORT_ID FILE...",
	Short: "Upload files to a report",
	Long: `Upload one or more local files to a report in a single transfer.
Inspectors upload raw files, reporters final files. The whole batch
either lands or fails together.

  auditctl upload 42f1... scan.pdf notes.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(session.RoleInspector, session.RoleReporter); err != nil {
			return err
		}

		reportID := args[0]
		paths := args[1:]

		files := make([]api.UploadFile, 0, len(paths))
		for _, p := range paths {
			f, err := os.Open(p)
			if err != nil {
				return fmt.Errorf("opening %s: %w", p, err)
			}
			defer f.Close()
			files = append(files, api.UploadFile{Name: filepath.Base(p), Content: f})
		}

		listing, err := bulkops.New().Upload(apiClient, roleSpace(), reportID, files)
		if err != nil {
			return teardownOnAuthError(err)
		}

		fmt.Printf("Uploaded %d file(s). Report now has %d file(s).\n", len(files), len(listing))
		return nil
	},
}

func roleSpace() bulkops.Space {
	if sess.Role == session.RoleInspector {
		return bulkops.SpaceRaw
	}
	return bulkops.SpaceFinal
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
