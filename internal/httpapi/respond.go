package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sman1kwanyar/presensi/internal/auth"
	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/metrics"
	"github.com/sman1kwanyar/presensi/internal/observability"
	"github.com/sman1kwanyar/presensi/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Sugar.Warnw("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, store.ErrLastAdmin):
		code = http.StatusConflict
	}
	if code >= 500 {
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		op, _ := ctxutil.Op(r.Context())
		s.log.Sugar.Errorw("handler", "op", op, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, code, errorBody{Error: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// requireAuth validates the bearer token and, when types are given,
// restricts the handler to those user types.
func (s *Server) requireAuth(next http.HandlerFunc, types ...auth.UserType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			s.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "token tidak ditemukan"})
			return
		}
		sess, err := auth.ParseToken(raw, s.jwtSecret)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "token tidak valid"})
			return
		}
		if len(types) > 0 {
			ok := false
			for _, t := range types {
				if sess.UserType == t {
					ok = true
					break
				}
			}
			if !ok {
				s.writeJSON(w, http.StatusForbidden, errorBody{Error: "akses ditolak"})
				return
			}
		}
		ctx := ctxutil.WithUserID(r.Context(), sess.UserID)
		next(w, r.WithContext(ctx))
	}
}
