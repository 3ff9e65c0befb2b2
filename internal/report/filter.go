// Package report computes derived views over an AppState snapshot.
// Every function is pure: same snapshot and filter, same output.
package report

import (
	"strings"

	"github.com/sman1kwanyar/presensi/internal/models"
)

// Mode selects between a single-day and a whole-month report.
type Mode string

const (
	Daily   Mode = "harian"
	Monthly Mode = "bulanan"
)

// Filter scopes a report. Period 0 means every teaching slot; ClassID ""
// means every class (violation reports only; attendance reports are
// always per class).
type Filter struct {
	Mode    Mode
	Date    string // YYYY-MM-DD, daily mode
	Month   string // YYYY-MM, monthly mode
	ClassID string
	Period  int
}

func (f Filter) matchDate(date string) bool {
	if f.Mode == Monthly {
		return strings.HasPrefix(date, f.Month)
	}
	return date == f.Date
}

// AttendanceRecords returns the class sessions matching the filter, in
// stored order.
func AttendanceRecords(state models.AppState, f Filter) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, r := range state.Records {
		if !f.matchDate(r.Date) || r.ClassID != f.ClassID {
			continue
		}
		if f.Mode == Daily && f.Period != 0 && r.Period != f.Period {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ClassStudents lists the students of the filtered class, in stored order.
func ClassStudents(state models.AppState, classID string) []models.Student {
	var out []models.Student
	for _, s := range state.Students {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out
}
