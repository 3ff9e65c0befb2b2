package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/report"
)

// WordMIME is the content type Word associates with exported reports.
const WordMIME = "application/msword"

const wordHeader = `<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'><head><meta charset='utf-8'><title>%s</title><style>body { font-family: Arial, sans-serif; } table { border-collapse: collapse; width: 100%%; } th, td { border: 1px solid black; padding: 5px; text-align: left; font-size: 10pt; }</style></head><body>`

// WordDocument wraps a rendered report fragment in the minimal Office
// HTML envelope, UTF-8 BOM first so Word picks the right encoding.
func WordDocument(title, fragment string) []byte {
	var b strings.Builder
	b.WriteString("\ufeff")
	fmt.Fprintf(&b, wordHeader, html.EscapeString(title))
	b.WriteString(fragment)
	b.WriteString("</body></html>")
	return []byte(b.String())
}

func esc(s string) string { return html.EscapeString(s) }

// AttendanceWordDoc renders the full attendance report table for Word.
func AttendanceWordDoc(state models.AppState, f report.Filter, loc *time.Location) []byte {
	var b strings.Builder
	className := "-"
	if cls := state.ClassByID(f.ClassID); cls != nil {
		className = cls.Name
	}
	scope := f.Date
	if f.Mode == report.Monthly {
		scope = models.IndonesianMonth(f.Month)
	}
	fmt.Fprintf(&b, "<h3>Laporan Presensi %s - %s</h3>", esc(className), esc(scope))
	if f.Mode == report.Daily {
		b.WriteString("<table><thead><tr><th>NO</th><th>NIS</th><th>NAMA</th><th>L/P</th><th>KET</th><th>JAM</th><th>WAKTU</th></tr></thead><tbody>")
		records := report.AttendanceRecords(state, f)
		for i, s := range report.ClassStudents(state, f.ClassID) {
			d := report.DailyStudentStatus(records, s.ID, loc)
			fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				i+1, esc(s.NIS), esc(strings.ToUpper(s.Name)), esc(s.Gender), esc(d.Status), esc(d.Period), esc(d.Time))
		}
	} else {
		b.WriteString("<table><thead><tr><th>NO</th><th>NIS</th><th>NAMA</th><th>L/P</th><th>H</th><th>S</th><th>I</th><th>D</th><th>A</th></tr></thead><tbody>")
		for i, s := range report.MonthlySummary(state, f) {
			fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>",
				i+1, esc(s.NIS), esc(strings.ToUpper(s.Name)), esc(s.Gender), s.H, s.S, s.I, s.D, s.A)
		}
	}
	totals := report.Totals(state, f)
	fmt.Fprintf(&b, "</tbody><tfoot><tr><td colspan=\"4\">JUMLAH</td><td>H:%d</td><td>S:%d</td><td>I:%d</td><td>D:%d</td><td>A:%d</td></tr></tfoot></table>",
		totals.H, totals.S, totals.I, totals.D, totals.A)
	return WordDocument("Laporan Presensi", b.String())
}

// ViolationWordDoc renders the infraction ledger table for Word.
func ViolationWordDoc(state models.AppState, f report.Filter) []byte {
	var b strings.Builder
	scope := f.Date
	if f.Mode == report.Monthly {
		scope = models.IndonesianMonth(f.Month)
	}
	fmt.Fprintf(&b, "<h3>Laporan Ketertiban - %s</h3>", esc(scope))
	b.WriteString("<table><thead><tr><th>NO</th><th>TANGGAL</th><th>NAMA</th><th>KELAS</th><th>PELANGGARAN</th><th>KATEGORI</th><th>POIN</th><th>PELAPOR</th></tr></thead><tbody>")
	for i, rec := range report.FilteredViolationRecords(state, f) {
		name, className := "-", "-"
		if stu := state.StudentByID(rec.StudentID); stu != nil {
			name = stu.Name
			if cls := state.ClassByID(stu.ClassID); cls != nil {
				className = cls.Name
			}
		}
		critName, category, points := "-", "-", 0
		if crit := state.CriterionByID(rec.CriterionID); crit != nil {
			critName, category, points = crit.Name, string(crit.Category), crit.Points
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>",
			i+1, esc(rec.Date), esc(name), esc(className), esc(critName), esc(category), points, esc(rec.ReportedBy))
	}
	b.WriteString("</tbody></table>")
	return WordDocument("Laporan Ketertiban", b.String())
}
