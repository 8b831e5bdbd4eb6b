// Package export serializes attendance snapshots to CSV, matching the column
// layout the admin dashboard displays.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/punchcardhq/punchcard/pkg/domain"
)

// Headers is the exported column set, in order.
var Headers = []string{
	"First Name",
	"Last Name",
	"Email",
	"Check-In Time",
	"Check-Out Time",
	"Total Working Hours",
	"Total Pause Time",
	"Status",
}

// Write renders records as CSV. Times are RFC3339; absent times are empty
// cells; totals keep two decimals like the dashboard tables.
func Write(w io.Writer, records []domain.AdminRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.FirstName,
			r.LastName,
			r.Email,
			formatTime(r.CheckInTime),
			formatTime(r.CheckOutTime),
			fmt.Sprintf("%.2f", r.TotalWorkHours),
			fmt.Sprintf("%.2f", r.TotalPauseTime),
			r.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
