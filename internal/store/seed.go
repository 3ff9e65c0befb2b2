package store

import "github.com/sman1kwanyar/presensi/internal/models"

// Seed returns the default starting document written on first use:
// one admin, a small sample of master data, the default disciplinary
// catalog and empty histories.
func Seed() models.AppState {
	return models.AppState{
		Headmaster: models.Headmaster{ID: "hm1", Name: "Drs. H. Kepala Sekolah, M.Pd", NIP: "19650101"},
		Admins: []models.Admin{
			{ID: "admin-1", Username: "admin", Password: "admin123", Name: "Administrator Utama"},
		},
		Teachers: []models.Teacher{
			{ID: "t1", Name: "Budi Santoso, S.Pd", NIP: "19800101", ClassIDs: []string{"c1"}, SubjectIDs: []string{"s1", "s3"}},
			{ID: "t2", Name: "Siti Aminah, M.Pd", NIP: "19850202", ClassIDs: []string{"c2"}, SubjectIDs: []string{"s2"}},
		},
		ViolationStaffs: []models.ViolationStaff{
			{ID: "vs1", Name: "Tim Ketertiban BK", Username: "bk1", Password: "bk123"},
		},
		Subjects: []models.Subject{
			{ID: "s1", Name: "Matematika Wajib"},
			{ID: "s2", Name: "Bahasa Indonesia"},
			{ID: "s3", Name: "Fisika"},
		},
		Classes: []models.StudentClass{
			{ID: "c1", Name: "X MIPA 1"},
			{ID: "c2", Name: "XII MIPA 1"},
		},
		Students: []models.Student{
			{ID: "st1", Name: "Achmad Fikri", NIS: "1001", ClassID: "c1", Gender: "L"},
			{ID: "st2", Name: "Dewi Sartika", NIS: "1002", ClassID: "c1", Gender: "P"},
		},
		Records: []models.AttendanceRecord{},
		ViolationCriteria: []models.ViolationCriterion{
			{ID: "vc1", Name: "Terlambat Masuk Sekolah", Category: models.Ringan, Points: 5},
			{ID: "vc2", Name: "Berpakaian Tidak Rapi", Category: models.Ringan, Points: 2},
			{ID: "vc3", Name: "Merusak Fasilitas Sekolah", Category: models.Berat, Points: 50},
			{ID: "vc4", Name: "Bolos Mata Pelajaran", Category: models.Sedang, Points: 15},
		},
		ViolationRecords: []models.ViolationRecord{},
	}
}
