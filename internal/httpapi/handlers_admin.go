package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/sman1kwanyar/presensi/internal/backup"
	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/store"
)

func (s *Server) handleUpdateHeadmaster(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "update_headmaster")
	var req struct {
		Name *string `json:"name"`
		NIP  *string `json:"nip"`
	}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	if err := s.store.UpdateHeadmaster(ctx, store.HeadmasterPatch{Name: req.Name, NIP: req.NIP}); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "insight")
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	text := s.gen.AttendanceInsight(ctx, state)
	s.writeJSON(w, http.StatusOK, map[string]string{"insight": text})
}

// handleBackup streams the whole document as a dated JSON download.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "backup")
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	payload, err := backup.Marshal(state)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	date := time.Now().In(s.loc).Format(models.DateLayout)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="backup_`+date+`.json"`)
	_, _ = w.Write(payload)
}

// handleRestore replaces the whole document with an uploaded backup. The
// shape check mirrors the upload dialog: a headmaster field must exist.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "restore")
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.badRequest(w, "gagal membaca file")
		return
	}
	state, err := backup.Parse(raw)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	if err := s.store.ReplaceData(ctx, state); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
