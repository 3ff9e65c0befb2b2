package httpapi

import (
	"net/http"

	"github.com/sman1kwanyar/presensi/internal/auth"
	"github.com/sman1kwanyar/presensi/internal/ctxutil"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	Session auth.Session `json:"session"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "login")
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := auth.Login(state, req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := auth.IssueToken(sess, s.jwtSecret)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{Token: token, Session: sess})
}

func (s *Server) handleViolationLogin(w http.ResponseWriter, r *http.Request) {
	ctx := ctxutil.WithOp(r.Context(), "violation_login")
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.badRequest(w, "body tidak valid")
		return
	}
	state, err := s.store.Get(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := auth.ViolationLogin(state, req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := auth.IssueToken(sess, s.jwtSecret)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{Token: token, Session: sess})
}

// handleSession echoes the identity carried by the token, so a reloaded
// client can restore its view without re-entering credentials.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserID(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"userId": userID})
}
