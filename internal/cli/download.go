package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/spf13/cobra"
)

var (
	flagSubfolder string
	flagOutPath   string
)

var downloadCmd = &cobra.Command{
	Use:   "download REPORT_ID",
	Short: "Download a report's files as a zip archive",
	Long: `Download the raw or final files of a report as a single zip.

  auditctl download 42f1... --subfolder raw
  auditctl download 42f1... --subfolder final -o final.zip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		reportID := args[0]
		subfolder, err := api.ParseSubfolder(flagSubfolder)
		if err != nil {
			return err
		}

		name, err := apiClient.ReportNameByID(reportID)
		if err != nil {
			if api.IsAuthError(err) {
				return teardownOnAuthError(err)
			}
			name = reportID
		}

		outPath := flagOutPath
		if outPath == "" {
			outPath = fmt.Sprintf("%s_report_%s_files.zip", name, subfolder)
		}

		body, err := apiClient.DownloadReportArchive(reportID, subfolder)
		if err != nil {
			return teardownOnAuthError(err)
		}
		defer body.Close()

		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer out.Close()

		written, err := io.Copy(out, body)
		if err != nil {
			os.Remove(outPath)
			return fmt.Errorf("downloading archive: %w", err)
		}

		fmt.Printf("Saved %s (%d bytes)\n", outPath, written)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVar(&flagSubfolder, "subfolder", "raw", "Which files to download: raw or final")
	downloadCmd.Flags().StringVarP(&flagOutPath, "output", "o", "", "Output path (default: <name>_report_<subfolder>_files.zip)")
	rootCmd.AddCommand(downloadCmd)
}
