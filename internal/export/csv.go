// Package export serializes report views to the file formats the school
// hands around: CSV, Word-compatible HTML and xlsx workbooks, plus the
// CSV bulk-import parsers.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/report"
)

// AttendanceCSV renders the attendance report for the filtered class.
// Daily mode: No,NIS,Nama,L/P,Ket,Jam,Waktu. Monthly mode:
// No,NIS,Nama,L/P,H,S,I,D,A. Free-text fields are double-quoted.
func AttendanceCSV(state models.AppState, f report.Filter, loc *time.Location) []byte {
	var b strings.Builder
	b.WriteString("No,NIS,Nama,L/P,")
	if f.Mode == report.Daily {
		b.WriteString("Ket,Jam,Waktu\n")
		records := report.AttendanceRecords(state, f)
		for i, s := range report.ClassStudents(state, f.ClassID) {
			d := report.DailyStudentStatus(records, s.ID, loc)
			fmt.Fprintf(&b, "%d,%s,%q,%s,%q,%q,%q\n", i+1, s.NIS, s.Name, s.Gender, d.Status, d.Period, d.Time)
		}
	} else {
		b.WriteString("H,S,I,D,A\n")
		for i, s := range report.MonthlySummary(state, f) {
			fmt.Fprintf(&b, "%d,%s,%q,%s,%d,%d,%d,%d,%d\n", i+1, s.NIS, s.Name, s.Gender, s.H, s.S, s.I, s.D, s.A)
		}
	}
	return []byte(b.String())
}

// ViolationCSV renders the filtered infraction ledger. Lookups that fail
// (deleted student, class or criterion) print "-" placeholders.
func ViolationCSV(state models.AppState, f report.Filter) []byte {
	var b strings.Builder
	b.WriteString("No,Tanggal,Nama Siswa,NIS,Kelas,Kategori,Jenis Pelanggaran,Poin,Pelapor,Keterangan\n")
	for i, rec := range report.FilteredViolationRecords(state, f) {
		name, nis, className := "-", "-", "-"
		if stu := state.StudentByID(rec.StudentID); stu != nil {
			name, nis = stu.Name, stu.NIS
			if cls := state.ClassByID(stu.ClassID); cls != nil {
				className = cls.Name
			}
		}
		category, critName, points := "-", "-", 0
		if crit := state.CriterionByID(rec.CriterionID); crit != nil {
			category, critName, points = string(crit.Category), crit.Name, crit.Points
		}
		reportedBy := rec.ReportedBy
		if reportedBy == "" {
			reportedBy = "-"
		}
		note := rec.Note
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(&b, "%d,%s,%q,%s,%q,%s,%q,%d,%q,%q\n",
			i+1, rec.Date, name, nis, className, category, critName, points, reportedBy, note)
	}
	return []byte(b.String())
}
