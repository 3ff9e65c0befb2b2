package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/report"
	"github.com/xuri/excelize/v2"
)

// SheetSpec is a header plus string rows; the workbook builder handles
// styling and widths.
type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// NewWorkbook builds an xlsx file with a bold, auto-filtered header and
// heuristic column widths on every sheet.
func NewWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		for c, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(c+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// heuristic widths from the header and the first rows
		for c := 1; c <= len(s.Header); c++ {
			maxim := len(s.Header[c-1])
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if c-1 < len(s.Rows[r]) {
					if l := len(s.Rows[r][c-1]); l > maxim {
						maxim = l
					}
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return f, nil
}

// AttendanceExcel builds the attendance report workbook for the filter.
func AttendanceExcel(state models.AppState, f report.Filter, loc *time.Location) (*excelize.File, error) {
	spec := SheetSpec{Title: "Presensi"}
	if f.Mode == report.Daily {
		spec.Header = []string{"No", "NIS", "Nama", "L/P", "Ket", "Jam", "Waktu"}
		records := report.AttendanceRecords(state, f)
		for i, s := range report.ClassStudents(state, f.ClassID) {
			d := report.DailyStudentStatus(records, s.ID, loc)
			spec.Rows = append(spec.Rows, []string{
				strconv.Itoa(i + 1), s.NIS, s.Name, s.Gender, d.Status, d.Period, d.Time,
			})
		}
	} else {
		spec.Header = []string{"No", "NIS", "Nama", "L/P", "H", "S", "I", "D", "A"}
		for i, s := range report.MonthlySummary(state, f) {
			spec.Rows = append(spec.Rows, []string{
				strconv.Itoa(i + 1), s.NIS, s.Name, s.Gender,
				strconv.Itoa(s.H), strconv.Itoa(s.S), strconv.Itoa(s.I), strconv.Itoa(s.D), strconv.Itoa(s.A),
			})
		}
	}
	return NewWorkbook([]SheetSpec{spec})
}

// ViolationExcel builds the infraction ledger workbook for the filter.
func ViolationExcel(state models.AppState, f report.Filter) (*excelize.File, error) {
	spec := SheetSpec{
		Title:  "Pelanggaran",
		Header: []string{"No", "Tanggal", "Nama Siswa", "NIS", "Kelas", "Kategori", "Jenis Pelanggaran", "Poin", "Pelapor", "Keterangan"},
	}
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
		spec.Rows = append(spec.Rows, []string{
			strconv.Itoa(i + 1), rec.Date, name, nis, className, category, critName,
			strconv.Itoa(points), rec.ReportedBy, rec.Note,
		})
	}
	return NewWorkbook([]SheetSpec{spec})
}

// helpers

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
