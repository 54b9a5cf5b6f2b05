package scheduling

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestNextWorkingDateFifteenFromMonday(t *testing.T) {
	// 2024-01-01 is a Monday. Fifteen working days ahead spans three full
	// weekends (6 skipped days), landing on Monday 2024-01-22.
	got := NextWorkingDate(15, mustDate(t, "2024-01-01"))
	if got != "2024-01-22" {
		t.Fatalf("expected 2024-01-22, got %s", got)
	}

	landed := mustDate(t, got)
	if wd := landed.Weekday(); wd == time.Saturday || wd == time.Sunday {
		t.Fatalf("landed on a weekend: %s", wd)
	}
}

func TestNextWorkingDateSkipsWeekend(t *testing.T) {
	// One working day after Friday is Monday.
	got := NextWorkingDate(1, mustDate(t, "2024-01-05"))
	if got != "2024-01-08" {
		t.Fatalf("expected 2024-01-08, got %s", got)
	}
}

func TestNextWorkingDateZeroDays(t *testing.T) {
	got := NextWorkingDate(0, mustDate(t, "2024-01-03"))
	if got != "2024-01-03" {
		t.Fatalf("expected base date back, got %s", got)
	}
}

func TestNextWorkingDateNeverLandsOnWeekend(t *testing.T) {
	base := mustDate(t, "2024-01-01")
	for days := 1; days <= 30; days++ {
		landed := mustDate(t, NextWorkingDate(days, base))
		if wd := landed.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("days=%d landed on %s", days, wd)
		}
	}
}
