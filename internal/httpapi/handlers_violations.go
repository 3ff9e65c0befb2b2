package httpapi

import (
	"net/http"
	"time"

	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/store"
)

func (s *Server) handleAddCriterion(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_criterion")
	var vc models.ViolationCriterion
	if err := decode(r, &vc); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if vc.Name == "" {
		s.badRequest(w, "nama pelanggaran wajib diisi")
		return
	}
	id, err := s.store.AddViolationCriterion(ctx, vc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateCriterion(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_criterion")
	var req struct {
		Name     *string                   `json:"name"`
		Category *models.ViolationCategory `json:"category"`
		Points   *int                      `json:"points"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	err := s.store.UpdateViolationCriterion(ctx, r.PathValue("id"), store.ViolationCriterionPatch{
		Name: req.Name, Category: req.Category, Points: req.Points,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCriterion(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_criterion")
	if err := s.store.DeleteViolationCriterion(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addViolationRecordRequest struct {
	StudentID   string `json:"studentId"`
	CriterionID string `json:"criterionId"`
	Date        string `json:"date"`
	Note        string `json:"note"`
	ReportedBy  string `json:"reportedBy"`
}

func (s *Server) handleAddViolationRecord(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_violation_record")
	var req addViolationRecordRequest
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if req.StudentID == "" || req.CriterionID == "" {
		s.badRequest(w, "siswa dan jenis pelanggaran wajib diisi")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().In(s.loc).Format(models.DateLayout)
	}
	id, err := s.store.AddViolationRecord(ctx, models.ViolationRecord{
		StudentID:   req.StudentID,
		CriterionID: req.CriterionID,
		Date:        req.Date,
		Note:        req.Note,
		ReportedBy:  req.ReportedBy,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleDeleteViolationRecord(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_violation_record")
	if err := s.store.DeleteViolationRecord(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
