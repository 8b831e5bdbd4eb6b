package domain

import (
	"fmt"
	"regexp"
	"time"
)

// AttendanceRecord is one day of attendance as computed by the service.
// Totals are server-owned; the client displays them verbatim and never
// derives or patches them locally.
type AttendanceRecord struct {
	ID             string     `json:"_id"`
	UserID         string     `json:"userId"`
	CheckInTime    *time.Time `json:"checkInTime"`
	CheckOutTime   *time.Time `json:"checkOutTime"`
	TotalWorkHours float64    `json:"totalWorkHours"`
	TotalPauseTime float64    `json:"totalPauseTime"`
	Status         string     `json:"status"`
}

// AdminRecord is an attendance row joined with the employee's identity, as
// returned by the admin attendance endpoint.
type AdminRecord struct {
	AttendanceRecord
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// PeriodCurrent selects the running month on the service side.
const PeriodCurrent = "current"

// Period scopes an attendance snapshot: "current" or a "YYYY-MM" month.
// Not persisted; a fresh session always starts at PeriodCurrent.
type Period string

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParsePeriod validates a period selector string.
func ParsePeriod(s string) (Period, error) {
	if s == PeriodCurrent {
		return Period(s), nil
	}
	if monthRe.MatchString(s) {
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q: want %q or YYYY-MM", s, PeriodCurrent)
}

// Label returns a human-readable name for the period selector.
func (p Period) Label() string {
	if p == PeriodCurrent {
		return "Current Month"
	}
	t, err := time.Parse("2006-01", string(p))
	if err != nil {
		return string(p)
	}
	return t.Format("January 2006")
}

// RecentPeriods returns the selector values offered in the dashboards:
// the current month followed by the n preceding months.
func RecentPeriods(now time.Time, n int) []Period {
	periods := make([]Period, 0, n+1)
	periods = append(periods, PeriodCurrent)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		month = month.AddDate(0, -1, 0)
		periods = append(periods, Period(month.Format("2006-01")))
	}
	return periods
}

// Action is an attendance command the client can issue. The service owns the
// resulting state; after any action the client re-fetches the visible period.
type Action string

const (
	ActionCheckIn  Action = "checkin"
	ActionPause    Action = "pause"
	ActionResume   Action = "resume"
	ActionCheckOut Action = "checkout"
)

// Actions lists every attendance action in display order.
var Actions = []Action{ActionCheckIn, ActionPause, ActionResume, ActionCheckOut}

// ValidAction returns true for a known attendance action.
func ValidAction(a Action) bool {
	switch a {
	case ActionCheckIn, ActionPause, ActionResume, ActionCheckOut:
		return true
	}
	return false
}

// Notice returns the success message shown after the action completes.
func (a Action) Notice() string {
	switch a {
	case ActionCheckIn:
		return "Checked in successfully!"
	case ActionPause:
		return "Attendance paused!"
	case ActionResume:
		return "Attendance resumed!"
	case ActionCheckOut:
		return "Checked out successfully!"
	}
	return ""
}

// Label returns the action's display name.
func (a Action) Label() string {
	switch a {
	case ActionCheckIn:
		return "Check In"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionCheckOut:
		return "Check Out"
	}
	return string(a)
}
