package auth_test

import (
	"errors"
	"testing"

	"github.com/sman1kwanyar/presensi/internal/auth"
	"github.com/sman1kwanyar/presensi/internal/models"
)

func loginState() models.AppState {
	return models.AppState{
		Admins: []models.Admin{
			{ID: "a1", Username: "sama", Password: "pw", Name: "Admin"},
		},
		Teachers: []models.Teacher{
			{ID: "t1", Name: "Guru", Username: "sama", Password: "pw"},
			{ID: "t2", Name: "Tanpa Akun"},
		},
		ViolationStaffs: []models.ViolationStaff{
			{ID: "vs1", Name: "BK", Username: "sama", Password: "pw"},
		},
	}
}

func TestLoginPrefersAdmin(t *testing.T) {
	sess, err := auth.Login(loginState(), "sama", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if sess.UserType != auth.UserAdmin || sess.UserID != "a1" {
		t.Fatalf("session: %+v", sess)
	}
}

func TestLoginFallsBackToTeacher(t *testing.T) {
	state := loginState()
	state.Admins[0].Password = "lain"
	sess, err := auth.Login(state, "sama", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if sess.UserType != auth.UserTeacher || sess.UserID != "t1" {
		t.Fatalf("session: %+v", sess)
	}
}

func TestLoginIgnoresCredentiallessTeachers(t *testing.T) {
	state := models.AppState{Teachers: []models.Teacher{{ID: "t2", Name: "Tanpa Akun"}}}
	if _, err := auth.Login(state, "", ""); !errors.Is(err, auth.ErrBadCredentials) {
		t.Fatalf("guru tanpa kredensial bisa login: %v", err)
	}
}

func TestViolationLoginPrefersStaff(t *testing.T) {
	sess, err := auth.ViolationLogin(loginState(), "sama", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if sess.UserType != auth.UserViolationStaff || sess.UserID != "vs1" {
		t.Fatalf("session: %+v", sess)
	}

	state := loginState()
	state.ViolationStaffs = nil
	sess, err = auth.ViolationLogin(state, "sama", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if sess.UserType != auth.UserAdmin {
		t.Fatalf("fallback admin gagal: %+v", sess)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	in := auth.Session{IsLoggedIn: true, UserType: auth.UserTeacher, UserID: "t1"}
	token, err := auth.IssueToken(in, "rahasia")
	if err != nil {
		t.Fatal(err)
	}
	out, err := auth.ParseToken(token, "rahasia")
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip: %+v != %+v", out, in)
	}

	if _, err := auth.ParseToken(token, "salah"); err == nil {
		t.Fatal("secret salah harus gagal")
	}
	if _, err := auth.IssueToken(in, ""); err == nil {
		t.Fatal("secret kosong harus gagal")
	}
}
