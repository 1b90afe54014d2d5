package utils

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate renders a date the way the forms send it.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly truncates a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SatThuWeekRange returns the workshop week containing anchor. The
// workshop works Saturday through Thursday with Friday off, so a week
// starts on the most recent Saturday and ends the following Thursday.
func SatThuWeekRange(anchor time.Time) (start, end time.Time) {
	anchor = DateOnly(anchor)
	daysSinceSaturday := (int(anchor.Weekday()) - int(time.Saturday) + 7) % 7
	start = anchor.AddDate(0, 0, -daysSinceSaturday)
	end = start.AddDate(0, 0, 5)
	return start, end
}

// ClampDateRange fills missing bounds with a trailing 30-day window and
// swaps inverted bounds.
func ClampDateRange(from, to time.Time) (time.Time, time.Time) {
	today := DateOnly(time.Now())
	if to.IsZero() {
		to = today
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		from, to = to, from
	}
	return from, to
}

// MonthRange returns the first and last day of anchor's calendar month.
func MonthRange(anchor time.Time) (start, end time.Time) {
	anchor = DateOnly(anchor)
	start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}
