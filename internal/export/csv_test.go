package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/punchcardhq/punchcard/pkg/domain"
)

func TestWrite(t *testing.T) {
	in := time.Date(2024, 7, 3, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 7, 3, 17, 30, 0, 0, time.UTC)
	records := []domain.AdminRecord{
		{
			AttendanceRecord: domain.AttendanceRecord{
				ID:             "r1",
				CheckInTime:    &in,
				CheckOutTime:   &out,
				TotalWorkHours: 7.5,
				TotalPauseTime: 1,
				Status:         "checked-out",
			},
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
		{
			AttendanceRecord: domain.AttendanceRecord{ID: "r2", CheckInTime: &in, Status: "checked-in"},
			FirstName:        "Alan",
			LastName:         "Turing",
			Email:            "alan@example.com",
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Headers, ",") {
		t.Errorf("header = %v, want %v", rows[0], Headers)
	}
	if rows[1][0] != "Ada" || rows[1][5] != "7.50" || rows[1][6] != "1.00" {
		t.Errorf("row = %v", rows[1])
	}
	// Absent checkout stays an empty cell, not the zero time.
	if rows[2][4] != "" {
		t.Errorf("missing checkout rendered as %q, want empty", rows[2][4])
	}
}

func TestWriteEmptySnapshotStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(got, "First Name,") {
		t.Errorf("output = %q, want header row", got)
	}
}
