package cli

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/listview"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/output"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/spf13/cobra"
)

var (
	flagSearch string
	flagStatus string
	flagSort   string
	flagPage   int
	flagLimit  int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports visible to you",
	Long: `List the reports your role can see: admins see everything,
inspectors their own reports, reporters their assigned reports.

  auditctl reports
  auditctl reports --status pending --sort name-asc
  auditctl reports --search quarterly --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		reports, err := listReportsForRole()
		if err != nil {
			return teardownOnAuthError(err)
		}

		q := listview.Query{
			Search:   flagSearch,
			Status:   listview.ParseStatusFilter(flagStatus),
			Sort:     listview.ParseSortOption(flagSort),
			Page:     flagPage,
			PageSize: flagLimit,
		}
		page := listview.Reports(reports, q)

		if flagJSON {
			output.JSON(page)
			return nil
		}

		output.ReportTable(page.Items)
		if page.TotalPages > 1 {
			fmt.Printf("\nPage %d of %d (%d reports)\n", page.Page, page.TotalPages, page.TotalFiltered)
		}
		return nil
	},
}

func listReportsForRole() ([]api.Report, error) {
	switch sess.Role {
	case session.RoleAdmin:
		return apiClient.GetAllReports()
	case session.RoleInspector:
		return apiClient.MyReports(sess.UserID)
	case session.RoleReporter:
		return apiClient.AssignedReports(sess.UserID)
	default:
		return nil, fmt.Errorf("unknown role %q", sess.Role)
	}
}

func init() {
	reportsCmd.Flags().StringVar(&flagSearch, "search", "", "Filter by report name (case-insensitive substring)")
	reportsCmd.Flags().StringVar(&flagStatus, "status", "all", "Filter by status: draft, pending, assigned, finalized")
	reportsCmd.Flags().StringVar(&flagSort, "sort", "newest", "Sort: newest, oldest, name-asc, name-desc, status-priority, status-reverse")
	reportsCmd.Flags().IntVar(&flagPage, "page", 1, "Page number")
	reportsCmd.Flags().IntVar(&flagLimit, "limit", listview.DefaultPageSize, "Reports per page")
	rootCmd.AddCommand(reportsCmd)
}
