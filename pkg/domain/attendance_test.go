package domain

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	valid := []string{"current", "2024-07", "2024-12", "1999-01"}
	for _, s := range valid {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q) error: %v", s, err)
		}
	}

	invalid := []string{"", "2024", "2024-13", "2024-00", "2024-7", "july", "2024-07-01"}
	for _, s := range invalid {
		if _, err := ParsePeriod(s); err == nil {
			t.Errorf("ParsePeriod(%q) expected error, got none", s)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := Period(PeriodCurrent).Label(); got != "Current Month" {
		t.Errorf("Label() = %q, want %q", got, "Current Month")
	}
	if got := Period("2024-07").Label(); got != "July 2024" {
		t.Errorf("Label() = %q, want %q", got, "July 2024")
	}
}

func TestRecentPeriods(t *testing.T) {
	now := time.Date(2024, time.September, 15, 12, 0, 0, 0, time.UTC)
	periods := RecentPeriods(now, 3)

	want := []Period{"current", "2024-08", "2024-07", "2024-06"}
	if len(periods) != len(want) {
		t.Fatalf("got %d periods, want %d", len(periods), len(want))
	}
	for i, p := range want {
		if periods[i] != p {
			t.Errorf("periods[%d] = %q, want %q", i, periods[i], p)
		}
	}
}

func TestRecentPeriodsCrossesYearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
	periods := RecentPeriods(now, 2)

	want := []Period{"current", "2024-12", "2024-11"}
	for i, p := range want {
		if periods[i] != p {
			t.Errorf("periods[%d] = %q, want %q", i, periods[i], p)
		}
	}
}

func TestValidAction(t *testing.T) {
	for _, a := range Actions {
		if !ValidAction(a) {
			t.Errorf("ValidAction(%q) = false, want true", a)
		}
	}
	if ValidAction("clockin") {
		t.Error(`ValidAction("clockin") = true, want false`)
	}
}

func TestActionNotices(t *testing.T) {
	for _, a := range Actions {
		if a.Notice() == "" {
			t.Errorf("Action(%q).Notice() is empty", a)
		}
		if a.Label() == "" {
			t.Errorf("Action(%q).Label() is empty", a)
		}
	}
}
