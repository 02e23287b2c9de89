// Package output renders CLI results for humans and for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
)

// JSON prints v as indented JSON to stdout.
func JSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// ReportTable prints reports as a human-readable table.
func ReportTable(reports []api.Report) {
	if len(reports) == 0 {
		fmt.Println("No reports found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tCREATED\tREPORTER\tID")
	for _, r := range reports {
		reporter := r.ReporterID
		if reporter == "" {
			reporter = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Status, formatTime(r.CreatedAt), reporter, r.ID)
	}
	w.Flush()
}

// UserTable prints users as a human-readable table. Access keys are only
// shown when the backend included them, which it does for admins.
func UserTable(users []api.User) {
	if len(users) == 0 {
		fmt.Println("No users found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROLE\tACCESS KEY\tID")
	for _, u := range users {
		key := u.AccessKey
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Name, u.Role, key, u.ID)
	}
	w.Flush()
}

// FileList prints file names one per line.
func FileList(names []string) {
	if len(names) == 0 {
		fmt.Println("No files found.")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02 Jan 2006 15:04")
}
