package models

import "time"

// DateLayout is the calendar-date format used everywhere in the document.
const DateLayout = "2006-01-02"

var indonesianDays = []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var indonesianMonths = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// IndonesianDay returns the Indonesian weekday name for a YYYY-MM-DD
// date, or "" when the date does not parse.
func IndonesianDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return indonesianDays[int(t.Weekday())]
}

// IndonesianMonth renders a YYYY-MM month filter as "Agustus 2026".
func IndonesianMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return ""
	}
	return indonesianMonths[int(t.Month())-1] + " " + t.Format("2006")
}

// PeriodForHour infers the teaching slot (jam ke-) from the wall-clock
// hour: period 1 starts at 07:00, one period per hour, capped at 8.
func PeriodForHour(hour int) int {
	switch {
	case hour < 7:
		return 0
	case hour >= 14:
		return 8
	default:
		return hour - 6
	}
}

// FormatCaptureTime renders an RFC3339 capture instant as HH.MM in the
// given location, the way report cells show it. Returns "-" on bad input.
func FormatCaptureTime(timestamp string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "-"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15.04")
}
