package utils_test

import (
	"testing"
	"time"

	"github.com/nusratfurniture/workshop_backend/utils"
)

func TestParseDate(t *testing.T) {
	got, err := utils.ParseDate("2026-08-09")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got != time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("ParseDate = %v", got)
	}

	if _, err := utils.ParseDate(""); err == nil {
		t.Error("expected error for blank date")
	}
	if _, err := utils.ParseDate("09/08/2026"); err == nil {
		t.Error("expected error for slash format")
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	d := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	parsed, err := utils.ParseDate(utils.FormatDate(d))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if parsed != d {
		t.Fatalf("round trip = %v, want %v", parsed, d)
	}
}

func TestSatThuWeekRange(t *testing.T) {
	cases := []struct {
		anchor    time.Time
		wantStart time.Time
	}{
		// Wednesday mid-week.
		{time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)},
		// Saturday starts its own week.
		{time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)},
		// Friday (the off day) belongs to the week that just ended.
		{time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		start, end := utils.SatThuWeekRange(tc.anchor)
		if start != tc.wantStart {
			t.Errorf("SatThuWeekRange(%v) start = %v, want %v", tc.anchor, start, tc.wantStart)
		}
		if end != tc.wantStart.AddDate(0, 0, 5) {
			t.Errorf("SatThuWeekRange(%v) end = %v", tc.anchor, end)
		}
		if end.Weekday() != time.Thursday {
			t.Errorf("week should end on Thursday, got %v", end.Weekday())
		}
	}
}

func TestClampDateRange(t *testing.T) {
	from, to := utils.ClampDateRange(time.Time{}, time.Time{})
	if to != utils.DateOnly(time.Now()) {
		t.Errorf("missing to should default to today, got %v", to)
	}
	if from != to.AddDate(0, 0, -30) {
		t.Errorf("missing from should default to 30 days back, got %v", from)
	}

	a := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	from, to = utils.ClampDateRange(a, b)
	if from != b || to != a {
		t.Errorf("inverted bounds should swap: %v..%v", from, to)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := utils.MonthRange(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
	if start != time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if end != time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC) {
		t.Errorf("end = %v", end)
	}
}
