package httpapi

import (
	"net/http"
	"time"

	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/models"
)

type submitAttendanceRequest struct {
	Date        string                    `json:"date"`
	Period      int                       `json:"period"`
	TeacherID   string                    `json:"teacherId"`
	SubjectID   string                    `json:"subjectId"`
	ClassID     string                    `json:"classId"`
	JournalNote string                    `json:"journalNote"`
	Details     []models.AttendanceDetail `json:"details"`
}

// handleSubmitAttendance is the roll-call form. Date defaults to today
// and period to the wall-clock hour rule when the form leaves them blank.
func (s *Server) handleSubmitAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "submit_attendance")
	var req submitAttendanceRequest
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if req.ClassID == "" || req.TeacherID == "" || req.SubjectID == "" {
		s.badRequest(w, "kelas, guru dan mata pelajaran wajib diisi")
		return
	}
	if len(req.Details) == 0 {
		s.badRequest(w, "daftar kehadiran kosong")
		return
	}
	now := time.Now().In(s.loc)
	if req.Date == "" {
		req.Date = now.Format(models.DateLayout)
	}
	if req.Period == 0 {
		req.Period = models.PeriodForHour(now.Hour())
	}
	id, err := s.store.SubmitAttendance(ctx, models.AttendanceRecord{
		Date:        req.Date,
		Timestamp:   now.Format(time.RFC3339),
		Period:      req.Period,
		TeacherID:   req.TeacherID,
		SubjectID:   req.SubjectID,
		ClassID:     req.ClassID,
		JournalNote: req.JournalNote,
		Details:     req.Details,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_record")
	if err := s.store.DeleteRecord(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
