package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sman1kwanyar/presensi/internal/export"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/report"
	"github.com/xuri/excelize/v2"
)

func exportFixture() models.AppState {
	return models.AppState{
		Classes: []models.StudentClass{{ID: "c1", Name: "X MIPA 1"}},
		Students: []models.Student{
			{ID: "st1", Name: "Ahmad, Jr", NIS: "1001", ClassID: "c1", Gender: "L"},
			{ID: "st2", Name: "Bunga", NIS: "1002", ClassID: "c1", Gender: "P"},
		},
		Records: []models.AttendanceRecord{{
			ID: "r1", Date: "2026-08-03", Period: 1, ClassID: "c1",
			Timestamp: "2026-08-03T07:15:00+07:00",
			Details: []models.AttendanceDetail{
				{StudentID: "st1", Status: models.Hadir},
				{StudentID: "st2", Status: models.Sakit},
			},
		}},
		ViolationCriteria: []models.ViolationCriterion{
			{ID: "vc1", Name: "Terlambat", Category: models.Ringan, Points: 5},
		},
		ViolationRecords: []models.ViolationRecord{
			{ID: "vr1", StudentID: "st1", CriterionID: "vc1", Date: "2026-08-03", ReportedBy: "BK", Note: "pagi"},
			{ID: "vr2", StudentID: "hilang", CriterionID: "hilang", Date: "2026-08-04"},
		},
	}
}

func TestAttendanceCSVDaily(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	f := report.Filter{Mode: report.Daily, Date: "2026-08-03", ClassID: "c1"}
	out := string(export.AttendanceCSV(exportFixture(), f, loc))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "No,NIS,Nama,L/P,Ket,Jam,Waktu" {
		t.Fatalf("header %q", lines[0])
	}
	// a comma in a name must stay inside the quoted cell
	if lines[1] != `1,1001,"Ahmad, Jr",L,"H","1","07.15"` {
		t.Fatalf("baris 1: %q", lines[1])
	}
	if lines[2] != `2,1002,"Bunga",P,"S","1","07.15"` {
		t.Fatalf("baris 2: %q", lines[2])
	}
}

func TestAttendanceCSVMonthly(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	f := report.Filter{Mode: report.Monthly, Month: "2026-08", ClassID: "c1"}
	out := string(export.AttendanceCSV(exportFixture(), f, loc))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "No,NIS,Nama,L/P,H,S,I,D,A" {
		t.Fatalf("header %q", lines[0])
	}
	if lines[1] != `1,1001,"Ahmad, Jr",L,1,0,0,0,0` {
		t.Fatalf("baris 1: %q", lines[1])
	}
}

func TestViolationCSVPlaceholders(t *testing.T) {
	f := report.Filter{Mode: report.Monthly, Month: "2026-08"}
	out := string(export.ViolationCSV(exportFixture(), f))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "No,Tanggal,Nama Siswa,NIS,Kelas,Kategori,Jenis Pelanggaran,Poin,Pelapor,Keterangan" {
		t.Fatalf("header %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Ahmad, Jr"`) || !strings.Contains(lines[1], "Ringan") {
		t.Fatalf("baris 1: %q", lines[1])
	}
	// deleted student and criterion render placeholders, points zero
	if lines[2] != `2,2026-08-04,"-",-,"-",-,"-",0,"-","-"` {
		t.Fatalf("baris 2: %q", lines[2])
	}
}

func TestWordDocumentEnvelope(t *testing.T) {
	doc := export.WordDocument("Judul <b>", "<p>isi</p>")
	if !bytes.HasPrefix(doc, []byte("\xef\xbb\xbf")) {
		t.Fatal("BOM hilang")
	}
	s := string(doc)
	if !strings.Contains(s, "urn:schemas-microsoft-com:office:word") {
		t.Fatal("envelope office hilang")
	}
	if !strings.Contains(s, "Judul &lt;b&gt;") {
		t.Fatal("judul tidak di-escape")
	}
	if !strings.HasSuffix(s, "</body></html>") {
		t.Fatal("penutup hilang")
	}
}

func TestAttendanceWordDocEscapesAndUppercases(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	f := report.Filter{Mode: report.Daily, Date: "2026-08-03", ClassID: "c1"}
	s := string(export.AttendanceWordDoc(exportFixture(), f, loc))
	if !strings.Contains(s, "AHMAD, JR") {
		t.Fatal("nama tidak dikapitalkan")
	}
	if !strings.Contains(s, "JUMLAH") {
		t.Fatal("footer jumlah hilang")
	}
}

func TestParseTeachersCSV(t *testing.T) {
	csv := "Nama,NIP,Username,Password\nBudi,123,budi,rahasia\n\nSiti , 456 , siti , x\n"
	got := export.ParseTeachersCSV(csv)
	if len(got) != 2 {
		t.Fatalf("jumlah %d", len(got))
	}
	if got[0].Name != "Budi" || got[0].NIP != "123" || got[0].Username != "budi" {
		t.Fatalf("baris 1: %+v", got[0])
	}
	if got[1].Name != "Siti" {
		t.Fatalf("whitespace tidak di-trim: %+v", got[1])
	}
	if got[0].ClassIDs == nil || got[0].SubjectIDs == nil {
		t.Fatal("penugasan harus slice kosong, bukan nil")
	}
}

func TestParseStudentsCSVDropsUnknownClass(t *testing.T) {
	classes := []models.StudentClass{{ID: "c1", Name: "X MIPA 1"}}
	csv := "Nama,NIS,Nama Kelas,L/P\nAhmad,1001,x mipa 1,L\nBunga,1002,X MIPA 1,p\nCitra,1003,Kelas Hantu,P\n"
	got := export.ParseStudentsCSV(csv, classes)
	if len(got) != 2 {
		t.Fatalf("jumlah %d: %+v", len(got), got)
	}
	if got[0].ClassID != "c1" {
		t.Fatal("nama kelas harus cocok tanpa memedulikan kapital")
	}
	if got[1].Gender != "P" {
		t.Fatalf("gender %q", got[1].Gender)
	}
}

func TestAttendanceExcelRoundTrip(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	f := report.Filter{Mode: report.Monthly, Month: "2026-08", ClassID: "c1"}
	wb, err := export.AttendanceExcel(exportFixture(), f, loc)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatal(err)
	}
	_ = wb.Close()

	back, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer back.Close()
	rows, err := back.GetRows("Presensi")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("jumlah baris %d", len(rows))
	}
	if rows[0][2] != "Nama" || rows[1][2] != "Ahmad, Jr" {
		t.Fatalf("isi sheet: %#v", rows)
	}
}

func TestViolationExcelSheet(t *testing.T) {
	f := report.Filter{Mode: report.Monthly, Month: "2026-08"}
	wb, err := export.ViolationExcel(exportFixture(), f)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()
	val, err := wb.GetCellValue("Pelanggaran", "F2")
	if err != nil {
		t.Fatal(err)
	}
	if val != "Ringan" {
		t.Fatalf("F2 = %q", val)
	}
}
