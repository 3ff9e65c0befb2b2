// Package httpapi is the presentation shell around the store: a JSON API
// mirroring the forms and reports of the original admin pages. Handlers
// follow the UI's loop: read a snapshot, call one store mutation, let
// the client re-read.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/sman1kwanyar/presensi/internal/auth"
	"github.com/sman1kwanyar/presensi/internal/insight"
	"github.com/sman1kwanyar/presensi/internal/logging"
	"github.com/sman1kwanyar/presensi/internal/metrics"
	"github.com/sman1kwanyar/presensi/internal/store"
)

// Pinger is implemented by backends that can report slot health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	store     *store.Store
	gen       *insight.Generator
	log       *logging.Log
	loc       *time.Location
	jwtSecret string
	pinger    Pinger
}

type Params struct {
	Store     *store.Store
	Generator *insight.Generator
	Log       *logging.Log
	Location  *time.Location
	JWTSecret string
	Pinger    Pinger // nil for the memory backend
}

func New(p Params) *Server {
	return &Server{
		store:     p.Store,
		gen:       p.Generator,
		log:       p.Log,
		loc:       p.Location,
		jwtSecret: p.JWTSecret,
		pinger:    p.Pinger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/violation/login", s.handleViolationLogin)
	mux.HandleFunc("GET /api/session", s.requireAuth(s.handleSession))

	// the attendance capture form is reachable without login, as the
	// original landing page allows
	mux.HandleFunc("POST /api/attendance", s.handleSubmitAttendance)
	mux.HandleFunc("DELETE /api/attendance/{id}", s.requireAuth(s.handleDeleteRecord, auth.UserAdmin))

	mux.HandleFunc("GET /api/state", s.requireAuth(s.handleGetState, auth.UserAdmin))

	mux.HandleFunc("POST /api/admins", s.requireAuth(s.handleAddAdmin, auth.UserAdmin))
	mux.HandleFunc("PATCH /api/admins/{id}", s.requireAuth(s.handleUpdateAdmin, auth.UserAdmin))
	mux.HandleFunc("DELETE /api/admins/{id}", s.requireAuth(s.handleDeleteAdmin, auth.UserAdmin))

	mux.HandleFunc("POST /api/teachers", s.requireAuth(s.handleAddTeacher, auth.UserAdmin))
	mux.HandleFunc("POST /api/teachers/import", s.requireAuth(s.handleImportTeachers, auth.UserAdmin))
	mux.HandleFunc("GET /api/teachers/template", s.handleTeacherTemplate)
	mux.HandleFunc("PATCH /api/teachers/{id}", s.requireAuth(s.handleUpdateTeacher, auth.UserAdmin))
	mux.HandleFunc("DELETE /api/teachers/{id}", s.requireAuth(s.handleDeleteTeacher, auth.UserAdmin))

	mux.HandleFunc("POST /api/students", s.requireAuth(s.handleAddStudent, auth.UserAdmin))
	mux.HandleFunc("POST /api/students/import", s.requireAuth(s.handleImportStudents, auth.UserAdmin))
	mux.HandleFunc("GET /api/students/template", s.handleStudentTemplate)
	mux.HandleFunc("PATCH /api/students/{id}", s.requireAuth(s.handleUpdateStudent, auth.UserAdmin))
	mux.HandleFunc("DELETE /api/students/{id}", s.requireAuth(s.handleDeleteStudent, auth.UserAdmin))

	mux.HandleFunc("POST /api/classes", s.requireAuth(s.handleAddClass, auth.UserAdmin))
	mux.HandleFunc("PATCH /api/classes/{id}", s.requireAuth(s.handleUpdateClass, auth.UserAdmin))
	mux.HandleFunc("DELETE /api/classes/{id}", s.requireAuth(s.handleDeleteClass, auth.UserAdmin))

	mux.HandleFunc("POST /api/subjects", s.requireAuth(s.handleAddSubject, auth.UserAdmin))
	mux.HandleFunc("PATCH /api/subjects/{id}", s.requireAuth(s.handleUpdateSubject, auth.UserAdmin))
	mux.HandleFunc("DELETE /api/subjects/{id}", s.requireAuth(s.handleDeleteSubject, auth.UserAdmin))

	mux.HandleFunc("POST /api/violation-staffs", s.requireAuth(s.handleAddViolationStaff, auth.UserAdmin))
	mux.HandleFunc("PATCH /api/violation-staffs/{id}", s.requireAuth(s.handleUpdateViolationStaff, auth.UserAdmin))
	mux.HandleFunc("DELETE /api/violation-staffs/{id}", s.requireAuth(s.handleDeleteViolationStaff, auth.UserAdmin))

	mux.HandleFunc("POST /api/violations/criteria", s.requireAuth(s.handleAddCriterion, auth.UserAdmin, auth.UserViolationStaff))
	mux.HandleFunc("PATCH /api/violations/criteria/{id}", s.requireAuth(s.handleUpdateCriterion, auth.UserAdmin, auth.UserViolationStaff))
	mux.HandleFunc("DELETE /api/violations/criteria/{id}", s.requireAuth(s.handleDeleteCriterion, auth.UserAdmin, auth.UserViolationStaff))
	mux.HandleFunc("POST /api/violations/records", s.requireAuth(s.handleAddViolationRecord, auth.UserAdmin, auth.UserViolationStaff))
	mux.HandleFunc("DELETE /api/violations/records/{id}", s.requireAuth(s.handleDeleteViolationRecord, auth.UserAdmin, auth.UserViolationStaff))

	mux.HandleFunc("PUT /api/headmaster", s.requireAuth(s.handleUpdateHeadmaster, auth.UserAdmin))

	mux.HandleFunc("GET /api/reports/attendance", s.requireAuth(s.handleAttendanceReport, auth.UserAdmin, auth.UserTeacher))
	mux.HandleFunc("GET /api/reports/attendance/export", s.requireAuth(s.handleAttendanceExport, auth.UserAdmin, auth.UserTeacher))
	mux.HandleFunc("GET /api/reports/violations", s.requireAuth(s.handleViolationReport, auth.UserAdmin, auth.UserViolationStaff))
	mux.HandleFunc("GET /api/reports/violations/export", s.requireAuth(s.handleViolationExport, auth.UserAdmin, auth.UserViolationStaff))
	mux.HandleFunc("GET /api/reports/dashboard", s.requireAuth(s.handleDashboard, auth.UserAdmin, auth.UserTeacher))
	mux.HandleFunc("GET /api/reports/headmaster", s.requireAuth(s.handleHeadmasterReport, auth.UserAdmin))

	mux.HandleFunc("GET /api/insight", s.requireAuth(s.handleInsight, auth.UserAdmin))
	mux.HandleFunc("GET /api/backup", s.requireAuth(s.handleBackup, auth.UserAdmin))
	mux.HandleFunc("POST /api/restore", s.requireAuth(s.handleRestore, auth.UserAdmin))

	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			http.Error(w, "store not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	_, _ = w.Write([]byte("ok"))
}

type HTTPServer struct {
	srv *http.Server
}

// Start serves the API and shuts down when ctx is cancelled.
func Start(ctx context.Context, addr string, s *Server) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	go func() {
		_ = srv.ListenAndServe() // closed via Shutdown below
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
