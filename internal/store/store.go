// Package store owns the single persisted AppState document and mediates
// every read and write against a durable key-value slot. Each mutation is
// a full read-modify-write: callers never observe a partial document, but
// there is no cross-operation isolation either; the deployment model is
// one interactive session.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sman1kwanyar/presensi/internal/metrics"
	"github.com/sman1kwanyar/presensi/internal/models"
)

// ErrLastAdmin is returned when a delete would leave zero admins.
var ErrLastAdmin = errors.New("minimal harus ada 1 admin")

type Store struct {
	backend Backend
}

func New(backend Backend) *Store { return &Store{backend: backend} }

// Get loads the current document. A never-written slot is seeded and the
// seed persisted before returning. A stored document missing top-level
// fields gets them backfilled from the seed on every read (migration on
// read). An unparseable payload yields the seed in memory only; recovery
// is not durable until the next explicit write.
func (s *Store) Get(ctx context.Context) (models.AppState, error) {
	payload, ok, err := s.backend.Load(ctx)
	if err != nil {
		metrics.StoreErrors.Inc()
		return models.AppState{}, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		state := Seed()
		if err := s.save(ctx, &state); err != nil {
			return models.AppState{}, err
		}
		return state, nil
	}

	var raw map[string]json.RawMessage
	var state models.AppState
	if err := json.Unmarshal(payload, &raw); err != nil || json.Unmarshal(payload, &state) != nil {
		return Seed(), nil
	}
	backfill(&state, raw)
	return state, nil
}

// backfill fills top-level fields absent from the stored payload with
// seed defaults. Presence is checked on the raw document so that a
// deliberately emptied collection is left alone.
func backfill(state *models.AppState, raw map[string]json.RawMessage) {
	seed := Seed()
	if _, ok := raw["admins"]; !ok {
		state.Admins = seed.Admins
	}
	if _, ok := raw["teachers"]; !ok {
		state.Teachers = seed.Teachers
	}
	if _, ok := raw["violationStaffs"]; !ok {
		state.ViolationStaffs = seed.ViolationStaffs
	}
	if _, ok := raw["subjects"]; !ok {
		state.Subjects = seed.Subjects
	}
	if _, ok := raw["classes"]; !ok {
		state.Classes = seed.Classes
	}
	if _, ok := raw["students"]; !ok {
		state.Students = seed.Students
	}
	if _, ok := raw["records"]; !ok {
		state.Records = []models.AttendanceRecord{}
	}
	if _, ok := raw["headmaster"]; !ok {
		state.Headmaster = seed.Headmaster
	}
	if _, ok := raw["violationCriteria"]; !ok {
		state.ViolationCriteria = seed.ViolationCriteria
	}
	if _, ok := raw["violationRecords"]; !ok {
		state.ViolationRecords = []models.ViolationRecord{}
	}
}

// ReplaceData overwrites the whole document unconditionally. No
// validation: the backup-restore flow owns structural checks.
func (s *Store) ReplaceData(ctx context.Context, state models.AppState) error {
	return s.save(ctx, &state)
}

func (s *Store) save(ctx context.Context, state *models.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	start := time.Now()
	if err := s.backend.Save(ctx, payload); err != nil {
		metrics.StoreErrors.Inc()
		return fmt.Errorf("persist document: %w", err)
	}
	metrics.StoreWrites.Inc()
	metrics.ObserveStorePersist(time.Since(start))
	return nil
}

func (s *Store) mutate(ctx context.Context, fn func(*models.AppState) error) error {
	state, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if err := fn(&state); err != nil {
		return err
	}
	return s.save(ctx, &state)
}

func newID() string { return uuid.NewString() }

// ---- admins ----

func (s *Store) AddAdmin(ctx context.Context, a models.Admin) (string, error) {
	a.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.Admins = append(st.Admins, a)
		return nil
	})
	return a.ID, err
}

// AdminPatch carries the fields an update may touch; nil means "leave".
type AdminPatch struct {
	Username *string
	Password *string
	Name     *string
}

func (s *Store) UpdateAdmin(ctx context.Context, id string, p AdminPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.Admins {
			if st.Admins[i].ID != id {
				continue
			}
			if p.Username != nil {
				st.Admins[i].Username = *p.Username
			}
			if p.Password != nil {
				st.Admins[i].Password = *p.Password
			}
			if p.Name != nil {
				st.Admins[i].Name = *p.Name
			}
		}
		return nil
	})
}

// DeleteAdmin refuses to drop the collection below one member.
func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		if len(st.Admins) <= 1 {
			return ErrLastAdmin
		}
		st.Admins = filterAdmins(st.Admins, id)
		return nil
	})
}

func filterAdmins(in []models.Admin, id string) []models.Admin {
	out := in[:0]
	for _, a := range in {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// ---- teachers ----

func (s *Store) AddTeacher(ctx context.Context, t models.Teacher) (string, error) {
	t.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.Teachers = append(st.Teachers, t)
		return nil
	})
	return t.ID, err
}

// BulkAddTeachers assigns fresh ids to every item and appends them all in
// one persisted write.
func (s *Store) BulkAddTeachers(ctx context.Context, ts []models.Teacher) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for _, t := range ts {
			t.ID = newID()
			st.Teachers = append(st.Teachers, t)
		}
		return nil
	})
}

type TeacherPatch struct {
	Name       *string
	NIP        *string
	ClassIDs   *[]string
	SubjectIDs *[]string
	Username   *string
	Password   *string
}

func (s *Store) UpdateTeacher(ctx context.Context, id string, p TeacherPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.Teachers {
			if st.Teachers[i].ID != id {
				continue
			}
			if p.Name != nil {
				st.Teachers[i].Name = *p.Name
			}
			if p.NIP != nil {
				st.Teachers[i].NIP = *p.NIP
			}
			if p.ClassIDs != nil {
				st.Teachers[i].ClassIDs = *p.ClassIDs
			}
			if p.SubjectIDs != nil {
				st.Teachers[i].SubjectIDs = *p.SubjectIDs
			}
			if p.Username != nil {
				st.Teachers[i].Username = *p.Username
			}
			if p.Password != nil {
				st.Teachers[i].Password = *p.Password
			}
		}
		return nil
	})
}

func (s *Store) DeleteTeacher(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.Teachers[:0]
		for _, t := range st.Teachers {
			if t.ID != id {
				out = append(out, t)
			}
		}
		st.Teachers = out
		return nil
	})
}

// ---- violation staff ----

func (s *Store) AddViolationStaff(ctx context.Context, vs models.ViolationStaff) (string, error) {
	vs.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.ViolationStaffs = append(st.ViolationStaffs, vs)
		return nil
	})
	return vs.ID, err
}

type ViolationStaffPatch struct {
	Name     *string
	Username *string
	Password *string
}

func (s *Store) UpdateViolationStaff(ctx context.Context, id string, p ViolationStaffPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.ViolationStaffs {
			if st.ViolationStaffs[i].ID != id {
				continue
			}
			if p.Name != nil {
				st.ViolationStaffs[i].Name = *p.Name
			}
			if p.Username != nil {
				st.ViolationStaffs[i].Username = *p.Username
			}
			if p.Password != nil {
				st.ViolationStaffs[i].Password = *p.Password
			}
		}
		return nil
	})
}

func (s *Store) DeleteViolationStaff(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.ViolationStaffs[:0]
		for _, vs := range st.ViolationStaffs {
			if vs.ID != id {
				out = append(out, vs)
			}
		}
		st.ViolationStaffs = out
		return nil
	})
}

// ---- students ----

func (s *Store) AddStudent(ctx context.Context, stu models.Student) (string, error) {
	stu.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.Students = append(st.Students, stu)
		return nil
	})
	return stu.ID, err
}

func (s *Store) BulkAddStudents(ctx context.Context, stus []models.Student) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for _, stu := range stus {
			stu.ID = newID()
			st.Students = append(st.Students, stu)
		}
		return nil
	})
}

type StudentPatch struct {
	Name    *string
	NIS     *string
	ClassID *string
	Gender  *string
}

func (s *Store) UpdateStudent(ctx context.Context, id string, p StudentPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.Students {
			if st.Students[i].ID != id {
				continue
			}
			if p.Name != nil {
				st.Students[i].Name = *p.Name
			}
			if p.NIS != nil {
				st.Students[i].NIS = *p.NIS
			}
			if p.ClassID != nil {
				st.Students[i].ClassID = *p.ClassID
			}
			if p.Gender != nil {
				st.Students[i].Gender = *p.Gender
			}
		}
		return nil
	})
}

// DeleteStudent does not touch historical attendance or violation
// records; their student ids become soft references.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.Students[:0]
		for _, stu := range st.Students {
			if stu.ID != id {
				out = append(out, stu)
			}
		}
		st.Students = out
		return nil
	})
}

// ---- classes ----

func (s *Store) AddClass(ctx context.Context, c models.StudentClass) (string, error) {
	c.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.Classes = append(st.Classes, c)
		return nil
	})
	return c.ID, err
}

type ClassPatch struct {
	Name *string
}

func (s *Store) UpdateClass(ctx context.Context, id string, p ClassPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.Classes {
			if st.Classes[i].ID == id && p.Name != nil {
				st.Classes[i].Name = *p.Name
			}
		}
		return nil
	})
}

func (s *Store) DeleteClass(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.Classes[:0]
		for _, c := range st.Classes {
			if c.ID != id {
				out = append(out, c)
			}
		}
		st.Classes = out
		return nil
	})
}

// ---- subjects ----

func (s *Store) AddSubject(ctx context.Context, sub models.Subject) (string, error) {
	sub.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.Subjects = append(st.Subjects, sub)
		return nil
	})
	return sub.ID, err
}

type SubjectPatch struct {
	Name *string
}

func (s *Store) UpdateSubject(ctx context.Context, id string, p SubjectPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.Subjects {
			if st.Subjects[i].ID == id && p.Name != nil {
				st.Subjects[i].Name = *p.Name
			}
		}
		return nil
	})
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.Subjects[:0]
		for _, sub := range st.Subjects {
			if sub.ID != id {
				out = append(out, sub)
			}
		}
		st.Subjects = out
		return nil
	})
}

// ---- attendance ----

// SubmitAttendance appends one roll-call record. Records are append- and
// delete-only: past sessions are never edited in place.
func (s *Store) SubmitAttendance(ctx context.Context, rec models.AttendanceRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.Day == "" {
		rec.Day = models.IndonesianDay(rec.Date)
	}
	if strings.TrimSpace(rec.Timestamp) == "" {
		rec.Timestamp = time.Now().Format(time.RFC3339)
	}
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.Records = append(st.Records, rec)
		return nil
	})
	return rec.ID, err
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.Records[:0]
		for _, r := range st.Records {
			if r.ID != id {
				out = append(out, r)
			}
		}
		st.Records = out
		return nil
	})
}

// ---- headmaster ----

type HeadmasterPatch struct {
	Name *string
	NIP  *string
}

// UpdateHeadmaster merges fields into the singleton; it is never deleted.
func (s *Store) UpdateHeadmaster(ctx context.Context, p HeadmasterPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		if p.Name != nil {
			st.Headmaster.Name = *p.Name
		}
		if p.NIP != nil {
			st.Headmaster.NIP = *p.NIP
		}
		return nil
	})
}

// ---- violations ----

func (s *Store) AddViolationCriterion(ctx context.Context, vc models.ViolationCriterion) (string, error) {
	vc.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.ViolationCriteria = append(st.ViolationCriteria, vc)
		return nil
	})
	return vc.ID, err
}

type ViolationCriterionPatch struct {
	Name     *string
	Category *models.ViolationCategory
	Points   *int
}

func (s *Store) UpdateViolationCriterion(ctx context.Context, id string, p ViolationCriterionPatch) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		for i := range st.ViolationCriteria {
			if st.ViolationCriteria[i].ID != id {
				continue
			}
			if p.Name != nil {
				st.ViolationCriteria[i].Name = *p.Name
			}
			if p.Category != nil {
				st.ViolationCriteria[i].Category = *p.Category
			}
			if p.Points != nil {
				st.ViolationCriteria[i].Points = *p.Points
			}
		}
		return nil
	})
}

// DeleteViolationCriterion leaves historical records pointing at the
// removed catalog entry; downstream lookups render a placeholder.
func (s *Store) DeleteViolationCriterion(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.ViolationCriteria[:0]
		for _, vc := range st.ViolationCriteria {
			if vc.ID != id {
				out = append(out, vc)
			}
		}
		st.ViolationCriteria = out
		return nil
	})
}

func (s *Store) AddViolationRecord(ctx context.Context, vr models.ViolationRecord) (string, error) {
	vr.ID = newID()
	err := s.mutate(ctx, func(st *models.AppState) error {
		st.ViolationRecords = append(st.ViolationRecords, vr)
		return nil
	})
	return vr.ID, err
}

func (s *Store) DeleteViolationRecord(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.AppState) error {
		out := st.ViolationRecords[:0]
		for _, vr := range st.ViolationRecords {
			if vr.ID != id {
				out = append(out, vr)
			}
		}
		st.ViolationRecords = out
		return nil
	})
}
