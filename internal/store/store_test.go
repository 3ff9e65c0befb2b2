package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewMemoryBackend())
}

func TestGetSeedsEmptySlot(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	st := store.New(backend)

	state, err := st.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Admins) != 1 || state.Admins[0].Username != "admin" {
		t.Fatalf("seed admin hilang: %#v", state.Admins)
	}
	if len(state.Records) != 0 || len(state.ViolationRecords) != 0 {
		t.Fatal("seed harus tanpa records")
	}

	// the seed must be durable, not just in memory
	payload, ok, err := backend.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("seed tidak dipersist: ok=%v err=%v", ok, err)
	}
	var round models.AppState
	if err := json.Unmarshal(payload, &round); err != nil {
		t.Fatal(err)
	}
	if round.Headmaster.Name == "" {
		t.Fatal("headmaster kosong setelah seed")
	}
}

func TestGetBackfillsMissingFields(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	// an old document written before the violation ledger existed
	old := map[string]any{
		"admins":     []models.Admin{{ID: "a1", Username: "admin", Password: "x", Name: "A"}},
		"headmaster": models.Headmaster{ID: "hm1", Name: "H"},
	}
	payload, err := json.Marshal(old)
	if err != nil {
		t.Fatal(err)
	}
	if err := backend.Save(ctx, payload); err != nil {
		t.Fatal(err)
	}

	st := store.New(backend)
	state, err := st.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Admins) != 1 || state.Admins[0].ID != "a1" {
		t.Fatalf("field yang ada tidak boleh ditimpa: %#v", state.Admins)
	}
	if len(state.Teachers) == 0 || len(state.Classes) == 0 || len(state.ViolationCriteria) == 0 {
		t.Fatal("field yang hilang harus diisi dari seed")
	}
	if state.ViolationRecords == nil || len(state.ViolationRecords) != 0 {
		t.Fatalf("violationRecords harus kosong, bukan nil/terisi: %#v", state.ViolationRecords)
	}
}

func TestGetLeavesEmptiedCollectionsAlone(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	doc := `{"admins":[{"id":"a1","username":"admin","password":"x","name":"A"}],"students":[],"headmaster":{"id":"hm1","name":"H","nip":""}}`
	if err := backend.Save(ctx, []byte(doc)); err != nil {
		t.Fatal(err)
	}

	state, err := store.New(backend).Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Students) != 0 {
		t.Fatalf("students sengaja dikosongkan, tidak boleh di-seed ulang: %#v", state.Students)
	}
}

func TestGetCorruptedPayloadFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	if err := backend.Save(ctx, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	state, err := store.New(backend).Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Admins) != 1 {
		t.Fatal("payload rusak harus menghasilkan seed")
	}
	// the corrupted payload stays on disk until the next write
	payload, _, err := backend.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != "{not json" {
		t.Fatal("fallback seed tidak boleh langsung dipersist")
	}
}

func TestDeleteAdminGuardsLastOne(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	state, err := st.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteAdmin(ctx, state.Admins[0].ID); err != store.ErrLastAdmin {
		t.Fatalf("harus ErrLastAdmin, got %v", err)
	}

	id, err := st.AddAdmin(ctx, models.Admin{Username: "kedua", Password: "p", Name: "Admin Dua"})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteAdmin(ctx, id); err != nil {
		t.Fatal(err)
	}
	state, err = st.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Admins) != 1 {
		t.Fatalf("admin tersisa %d, harus 1", len(state.Admins))
	}
}

func TestTeacherCRUDAndBulkImport(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	before, _ := st.Get(ctx)

	id, err := st.AddTeacher(ctx, models.Teacher{Name: "Guru Baru", NIP: "99", ClassIDs: []string{}, SubjectIDs: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	newName := "Guru Diganti"
	if err := st.UpdateTeacher(ctx, id, store.TeacherPatch{Name: &newName}); err != nil {
		t.Fatal(err)
	}
	state, _ := st.Get(ctx)
	tch := state.TeacherByID(id)
	if tch == nil || tch.Name != "Guru Diganti" {
		t.Fatalf("patch tidak diterapkan: %#v", tch)
	}
	if tch.NIP != "99" {
		t.Fatal("field di luar patch berubah")
	}

	if err := st.BulkAddTeachers(ctx, []models.Teacher{{Name: "G1"}, {Name: "G2"}}); err != nil {
		t.Fatal(err)
	}
	state, _ = st.Get(ctx)
	if got, want := len(state.Teachers), len(before.Teachers)+3; got != want {
		t.Fatalf("jumlah guru %d, harus %d", got, want)
	}

	if err := st.DeleteTeacher(ctx, id); err != nil {
		t.Fatal(err)
	}
	state, _ = st.Get(ctx)
	if state.TeacherByID(id) != nil {
		t.Fatal("guru masih ada setelah dihapus")
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	before, _ := st.Get(ctx)
	if err := st.DeleteStudent(ctx, "tidak-ada"); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteRecord(ctx, "tidak-ada"); err != nil {
		t.Fatal(err)
	}
	after, _ := st.Get(ctx)
	if len(after.Students) != len(before.Students) || len(after.Records) != len(before.Records) {
		t.Fatal("delete id tak dikenal mengubah koleksi")
	}
}

func TestSubmitAttendanceFillsDerivedFields(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	id, err := st.SubmitAttendance(ctx, models.AttendanceRecord{
		Date:      "2026-08-24", // a Monday
		Period:    3,
		TeacherID: "t1",
		SubjectID: "s1",
		ClassID:   "c1",
		Details:   []models.AttendanceDetail{{StudentID: "st1", Status: models.Hadir}},
	})
	if err != nil {
		t.Fatal(err)
	}
	state, _ := st.Get(ctx)
	var rec *models.AttendanceRecord
	for i := range state.Records {
		if state.Records[i].ID == id {
			rec = &state.Records[i]
		}
	}
	if rec == nil {
		t.Fatal("record tidak tersimpan")
	}
	if rec.Day != "Senin" {
		t.Fatalf("day %q, harus Senin", rec.Day)
	}
	if rec.Timestamp == "" {
		t.Fatal("timestamp kosong")
	}
}

func TestUpdateHeadmasterMergesFields(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	state, _ := st.Get(ctx)
	oldName := state.Headmaster.Name
	nip := "1977"
	if err := st.UpdateHeadmaster(ctx, store.HeadmasterPatch{NIP: &nip}); err != nil {
		t.Fatal(err)
	}
	state, _ = st.Get(ctx)
	if state.Headmaster.NIP != "1977" {
		t.Fatal("nip tidak diganti")
	}
	if state.Headmaster.Name != oldName {
		t.Fatal("name ikut berubah padahal tidak dipatch")
	}
}

func TestViolationRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	state, _ := st.Get(ctx)
	critID := state.ViolationCriteria[0].ID
	stuID := state.Students[0].ID

	id, err := st.AddViolationRecord(ctx, models.ViolationRecord{
		StudentID: stuID, CriterionID: critID, Date: "2026-08-20", ReportedBy: "BK",
	})
	if err != nil {
		t.Fatal(err)
	}

	// deleting the criterion leaves the record dangling
	if err := st.DeleteViolationCriterion(ctx, critID); err != nil {
		t.Fatal(err)
	}
	state, _ = st.Get(ctx)
	if state.CriterionByID(critID) != nil {
		t.Fatal("criterion masih ada")
	}
	found := false
	for _, vr := range state.ViolationRecords {
		if vr.ID == id {
			found = true
		}
	}
	if !found {
		t.Fatal("record ikut terhapus bersama criterion")
	}

	if err := st.DeleteViolationRecord(ctx, id); err != nil {
		t.Fatal(err)
	}
	state, _ = st.Get(ctx)
	if len(state.ViolationRecords) != 0 {
		t.Fatal("record tidak terhapus")
	}
}

func TestReplaceDataOverwritesDocument(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	if _, err := st.Get(ctx); err != nil {
		t.Fatal(err)
	}
	next := store.Seed()
	next.Headmaster.Name = "Kepala Baru"
	next.Students = nil
	if err := st.ReplaceData(ctx, next); err != nil {
		t.Fatal(err)
	}
	state, err := st.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if state.Headmaster.Name != "Kepala Baru" {
		t.Fatal("dokumen tidak tergantikan")
	}
	if len(state.Students) != 0 {
		t.Fatal("students harus kosong setelah restore")
	}
}
