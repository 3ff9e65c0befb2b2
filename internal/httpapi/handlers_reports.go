package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/export"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/report"
	"github.com/xuri/excelize/v2"
)

// filterFromQuery builds the report scope from query parameters:
// mode=harian|bulanan, date=YYYY-MM-DD, month=YYYY-MM, classId, period.
func filterFromQuery(r *http.Request) report.Filter {
	q := r.URL.Query()
	f := report.Filter{
		Mode:    report.Mode(q.Get("mode")),
		Date:    q.Get("date"),
		Month:   q.Get("month"),
		ClassID: q.Get("classId"),
	}
	if f.Mode != report.Monthly {
		f.Mode = report.Daily
	}
	if p, err := strconv.Atoi(q.Get("period")); err == nil {
		f.Period = p
	}
	return f
}

type dailyRow struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	NIS       string `json:"nis"`
	Gender    string `json:"gender"`
	Status    string `json:"status"`
	Period    string `json:"period"`
	Time      string `json:"time"`
}

type attendanceReportResponse struct {
	Mode    report.Mode           `json:"mode"`
	Daily   []dailyRow            `json:"daily,omitempty"`
	Monthly []report.StudentTally `json:"monthly,omitempty"`
	Totals  report.Tally          `json:"totals"`
}

func (s *Server) handleAttendanceReport(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "attendance_report")
	f := filterFromQuery(r)
	if f.ClassID == "" {
		s.badRequest(w, "classId wajib diisi")
		return
	}
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := attendanceReportResponse{Mode: f.Mode, Totals: report.Totals(state, f)}
	if f.Mode == report.Daily {
		records := report.AttendanceRecords(state, f)
		for _, stu := range report.ClassStudents(state, f.ClassID) {
			d := report.DailyStudentStatus(records, stu.ID, s.loc)
			resp.Daily = append(resp.Daily, dailyRow{
				StudentID: stu.ID, Name: stu.Name, NIS: stu.NIS, Gender: stu.Gender,
				Status: d.Status, Period: d.Period, Time: d.Time,
			})
		}
	} else {
		resp.Monthly = report.MonthlySummary(state, f)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleAttendanceExport streams the report as a download; format is
// csv, word or xlsx.
func (s *Server) handleAttendanceExport(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "attendance_export")
	f := filterFromQuery(r)
	if f.ClassID == "" {
		s.badRequest(w, "classId wajib diisi")
		return
	}
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scope := f.Date
	if f.Mode == report.Monthly {
		scope = f.Month
	}
	base := fmt.Sprintf("laporan_presensi_%s", scope)
	switch r.URL.Query().Get("format") {
	case "word":
		serveWord(w, base+".doc", export.AttendanceWordDoc(state, f, s.loc))
	case "xlsx":
		wb, err := export.AttendanceExcel(state, f, s.loc)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.serveXLSX(w, base+".xlsx", wb)
	default:
		serveCSV(w, base+".csv", export.AttendanceCSV(state, f, s.loc))
	}
}

type violationReportResponse struct {
	Records []models.ViolationRecord `json:"records"`
	Stats   report.ViolationStats    `json:"stats"`
}

func (s *Server) handleViolationReport(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "violation_report")
	f := filterFromQuery(r)
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recs := report.FilteredViolationRecords(state, f)
	if recs == nil {
		recs = []models.ViolationRecord{}
	}
	s.writeJSON(w, http.StatusOK, violationReportResponse{
		Records: recs,
		Stats:   report.FilteredViolationStats(state, f),
	})
}

func (s *Server) handleViolationExport(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "violation_export")
	f := filterFromQuery(r)
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scope := f.Date
	if f.Mode == report.Monthly {
		scope = f.Month
	}
	base := fmt.Sprintf("laporan_ketertiban_%s", scope)
	switch r.URL.Query().Get("format") {
	case "word":
		serveWord(w, base+".doc", export.ViolationWordDoc(state, f))
	case "xlsx":
		wb, err := export.ViolationExcel(state, f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.serveXLSX(w, base+".xlsx", wb)
	default:
		serveCSV(w, base+".csv", export.ViolationCSV(state, f))
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "dashboard")
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.BuildDashboard(state))
}

type headmasterReportResponse struct {
	ViolationStats  report.ViolationStats        `json:"violationStats"`
	ByClass         []report.ClassViolationStats `json:"byClass"`
	ClassAttendance []report.ClassRate           `json:"classAttendance"`
	TodaySessions   []models.AttendanceRecord    `json:"todaySessions"`
}

// handleHeadmasterReport is the executive view: school-wide discipline
// stats plus today's teaching activity.
func (s *Server) handleHeadmasterReport(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "headmaster_report")
	f := filterFromQuery(r)
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	today := time.Now().In(s.loc).Format(models.DateLayout)
	sessions := report.TeacherActivity(state, today)
	if sessions == nil {
		sessions = []models.AttendanceRecord{}
	}
	s.writeJSON(w, http.StatusOK, headmasterReportResponse{
		ViolationStats:  report.GlobalViolationStats(state),
		ByClass:         report.ViolationStatsByClass(state, f),
		ClassAttendance: report.ClassAttendanceRank(state, 0),
		TodaySessions:   sessions,
	})
}

func serveWord(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", export.WordMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

func (s *Server) serveXLSX(w http.ResponseWriter, filename string, wb *excelize.File) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := wb.Write(w); err != nil {
		s.log.Sugar.Warnw("write workbook", "err", err)
	}
	_ = wb.Close()
}
