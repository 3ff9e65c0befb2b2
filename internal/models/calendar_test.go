package models_test

import (
	"testing"
	"time"

	"github.com/sman1kwanyar/presensi/internal/models"
)

func TestIndonesianDay(t *testing.T) {
	cases := map[string]string{
		"2026-08-23": "Minggu",
		"2026-08-24": "Senin",
		"2026-08-28": "Jumat",
		"bukan-tgl":  "",
	}
	for date, want := range cases {
		if got := models.IndonesianDay(date); got != want {
			t.Fatalf("IndonesianDay(%q) = %q, want %q", date, got, want)
		}
	}
}

func TestIndonesianMonth(t *testing.T) {
	if got := models.IndonesianMonth("2026-08"); got != "Agustus 2026" {
		t.Fatalf("got %q", got)
	}
	if got := models.IndonesianMonth("x"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestPeriodForHour(t *testing.T) {
	cases := []struct{ hour, want int }{
		{5, 0}, {6, 0}, {7, 1}, {8, 2}, {13, 7}, {14, 8}, {20, 8},
	}
	for _, c := range cases {
		if got := models.PeriodForHour(c.hour); got != c.want {
			t.Fatalf("PeriodForHour(%d) = %d, want %d", c.hour, got, c.want)
		}
	}
}

func TestFormatCaptureTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatal(err)
	}
	if got := models.FormatCaptureTime("2026-08-24T00:30:00Z", loc); got != "07.30" {
		t.Fatalf("got %q", got)
	}
	if got := models.FormatCaptureTime("rusak", loc); got != "-" {
		t.Fatalf("got %q", got)
	}
}

func TestStatusLetter(t *testing.T) {
	cases := map[models.AttendanceStatus]string{
		models.Hadir:      "H",
		models.Izin:       "I",
		models.Sakit:      "S",
		models.Dispensasi: "D",
		models.Alpa:       "A",
		"Aneh":            "A",
	}
	for status, want := range cases {
		if got := status.Letter(); got != want {
			t.Fatalf("%s.Letter() = %q, want %q", status, got, want)
		}
	}
}
