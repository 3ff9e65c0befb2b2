package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/store"
)

func TestSQLiteBackendSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "presensi.db")

	backend, err := store.NewSQLiteBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	st := store.New(backend)
	id, err := st.AddClass(ctx, models.StudentClass{Name: "XII IPS 9"})
	if err != nil {
		t.Fatal(err)
	}
	if err := backend.Close(); err != nil {
		t.Fatal(err)
	}

	backend, err = store.NewSQLiteBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()
	state, err := store.New(backend).Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if state.ClassByID(id) == nil {
		t.Fatal("kelas hilang setelah reopen")
	}
}

func TestSQLiteBackendEmptySlot(t *testing.T) {
	ctx := context.Background()
	backend, err := store.NewSQLiteBackend(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()

	_, ok, err := backend.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("slot baru harus kosong")
	}
	if err := backend.Ping(ctx); err != nil {
		t.Fatal(err)
	}
}
