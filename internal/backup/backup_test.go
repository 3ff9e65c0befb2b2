package backup_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sman1kwanyar/presensi/internal/backup"
	"github.com/sman1kwanyar/presensi/internal/models"
)

func TestMarshalParseRoundTrip(t *testing.T) {
	state := models.AppState{
		Admins:     []models.Admin{{ID: "a1", Username: "admin", Password: "x", Name: "A"}},
		Headmaster: models.Headmaster{ID: "hm1", Name: "Kepala", NIP: "123"},
	}
	payload, err := backup.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}
	back, err := backup.Parse(payload)
	if err != nil {
		t.Fatal(err)
	}
	if back.Headmaster.Name != "Kepala" || len(back.Admins) != 1 {
		t.Fatalf("round trip: %+v", back)
	}
}

func TestParseRejectsMissingHeadmaster(t *testing.T) {
	if _, err := backup.Parse([]byte(`{"admins":[]}`)); !errors.Is(err, backup.ErrBadShape) {
		t.Fatalf("harus ErrBadShape, got %v", err)
	}
	if _, err := backup.Parse([]byte("bukan json")); err == nil {
		t.Fatal("payload rusak harus gagal")
	}
}

func TestWriteFileCreatesDatedBackup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")
	state := models.AppState{Headmaster: models.Headmaster{ID: "hm1", Name: "K"}}

	path, err := backup.WriteFile(dir, state, "2026-08-27")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "backup_2026-08-27.json" {
		t.Fatalf("nama file %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := backup.Parse(raw); err != nil {
		t.Fatalf("file backup tidak bisa dibaca kembali: %v", err)
	}
}
