// Package auth resolves logins against the current snapshot and carries
// the session identity. Credentials are compared in plain text for
// parity with the data the school already has; this is not a hardening
// layer.
package auth

import (
	"errors"

	"github.com/sman1kwanyar/presensi/internal/models"
)

// UserType discriminates the portal a session belongs to.
type UserType string

const (
	UserAdmin          UserType = "admin"
	UserTeacher        UserType = "teacher"
	UserViolationStaff UserType = "violation"
)

// Session is the process-wide identity: set at login, cleared at logout,
// restored from the bearer token on each request.
type Session struct {
	IsLoggedIn bool     `json:"isLoggedIn"`
	UserType   UserType `json:"userType"`
	UserID     string   `json:"userId"`
}

var ErrBadCredentials = errors.New("username atau password salah")

// Login resolves the unified portal login: admins first, then teachers
// with portal credentials.
func Login(state models.AppState, username, password string) (Session, error) {
	for _, a := range state.Admins {
		if a.Username == username && a.Password == password {
			return Session{IsLoggedIn: true, UserType: UserAdmin, UserID: a.ID}, nil
		}
	}
	for _, t := range state.Teachers {
		if t.Username != "" && t.Username == username && t.Password == password {
			return Session{IsLoggedIn: true, UserType: UserTeacher, UserID: t.ID}, nil
		}
	}
	return Session{}, ErrBadCredentials
}

// ViolationLogin resolves the disciplinary-office login: BK staff first,
// then admins.
func ViolationLogin(state models.AppState, username, password string) (Session, error) {
	for _, vs := range state.ViolationStaffs {
		if vs.Username == username && vs.Password == password {
			return Session{IsLoggedIn: true, UserType: UserViolationStaff, UserID: vs.ID}, nil
		}
	}
	for _, a := range state.Admins {
		if a.Username == username && a.Password == password {
			return Session{IsLoggedIn: true, UserType: UserAdmin, UserID: a.ID}, nil
		}
	}
	return Session{}, ErrBadCredentials
}
