package httpapi

import (
	"io"
	"net/http"

	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/export"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/store"
)

type idResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "get_state")
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// ---- admins ----

func (s *Server) handleAddAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_admin")
	var a models.Admin
	if err := decode(r, &a); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	id, err := s.store.AddAdmin(ctx, a)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_admin")
	var req struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
		Name     *string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	err := s.store.UpdateAdmin(ctx, r.PathValue("id"), store.AdminPatch{
		Username: req.Username, Password: req.Password, Name: req.Name,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_admin")
	if err := s.store.DeleteAdmin(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- teachers ----

func (s *Server) handleAddTeacher(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_teacher")
	var t models.Teacher
	if err := decode(r, &t); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if t.ClassIDs == nil {
		t.ClassIDs = []string{}
	}
	if t.SubjectIDs == nil {
		t.SubjectIDs = []string{}
	}
	id, err := s.store.AddTeacher(ctx, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_teacher")
	var req struct {
		Name       *string   `json:"name"`
		NIP        *string   `json:"nip"`
		ClassIDs   *[]string `json:"classIds"`
		SubjectIDs *[]string `json:"subjectIds"`
		Username   *string   `json:"username"`
		Password   *string   `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	err := s.store.UpdateTeacher(ctx, r.PathValue("id"), store.TeacherPatch{
		Name: req.Name, NIP: req.NIP,
		ClassIDs: req.ClassIDs, SubjectIDs: req.SubjectIDs,
		Username: req.Username, Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_teacher")
	if err := s.store.DeleteTeacher(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportTeachers takes the raw CSV body (the upload form posts the
// file content as text/csv) and appends every parsed row.
func (s *Server) handleImportTeachers(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "import_teachers")
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.badRequest(w, "gagal membaca file")
		return
	}
	teachers := export.ParseTeachersCSV(string(raw))
	if len(teachers) == 0 {
		s.badRequest(w, "tidak ada baris yang dapat diimpor")
		return
	}
	if err := s.store.BulkAddTeachers(ctx, teachers); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"imported": len(teachers)})
}

func (s *Server) handleTeacherTemplate(w http.ResponseWriter, r *http.Request) {
	serveCSV(w, "template_guru.csv", []byte(export.TeacherTemplateCSV))
}

// ---- students ----

func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_student")
	var stu models.Student
	if err := decode(r, &stu); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	id, err := s.store.AddStudent(ctx, stu)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_student")
	var req struct {
		Name    *string `json:"name"`
		NIS     *string `json:"nis"`
		ClassID *string `json:"classId"`
		Gender  *string `json:"gender"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	err := s.store.UpdateStudent(ctx, r.PathValue("id"), store.StudentPatch{
		Name: req.Name, NIS: req.NIS, ClassID: req.ClassID, Gender: req.Gender,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_student")
	if err := s.store.DeleteStudent(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportStudents matches class names against the current snapshot;
// rows naming an unknown class are dropped, mirroring the upload form.
func (s *Server) handleImportStudents(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "import_students")
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.badRequest(w, "gagal membaca file")
		return
	}
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	students := export.ParseStudentsCSV(string(raw), state.Classes)
	if len(students) == 0 {
		s.badRequest(w, "tidak ada baris yang dapat diimpor")
		return
	}
	if err := s.store.BulkAddStudents(ctx, students); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"imported": len(students)})
}

func (s *Server) handleStudentTemplate(w http.ResponseWriter, r *http.Request) {
	serveCSV(w, "template_siswa.csv", []byte(export.StudentTemplateCSV))
}

// ---- classes ----

func (s *Server) handleAddClass(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_class")
	var c models.StudentClass
	if err := decode(r, &c); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	id, err := s.store.AddClass(ctx, c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_class")
	var req struct {
		Name *string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if err := s.store.UpdateClass(ctx, r.PathValue("id"), store.ClassPatch{Name: req.Name}); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_class")
	if err := s.store.DeleteClass(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- subjects ----

func (s *Server) handleAddSubject(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_subject")
	var sub models.Subject
	if err := decode(r, &sub); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	id, err := s.store.AddSubject(ctx, sub)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_subject")
	var req struct {
		Name *string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if err := s.store.UpdateSubject(ctx, r.PathValue("id"), store.SubjectPatch{Name: req.Name}); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_subject")
	if err := s.store.DeleteSubject(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- violation staff ----

func (s *Server) handleAddViolationStaff(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "add_violation_staff")
	var vs models.ViolationStaff
	if err := decode(r, &vs); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	id, err := s.store.AddViolationStaff(ctx, vs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateViolationStaff(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_violation_staff")
	var req struct {
		Name     *string `json:"name"`
		Username *string `json:"username"`
		Password *string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	err := s.store.UpdateViolationStaff(ctx, r.PathValue("id"), store.ViolationStaffPatch{
		Name: req.Name, Username: req.Username, Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteViolationStaff(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "delete_violation_staff")
	if err := s.store.DeleteViolationStaff(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func serveCSV(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}
