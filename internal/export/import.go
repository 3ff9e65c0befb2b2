package export

import (
	"strings"

	"github.com/sman1kwanyar/presensi/internal/models"
)

// Import templates offered for download next to the upload buttons.
const (
	TeacherTemplateCSV = "Nama,NIP,Username,Password\nBudi Santoso S.Pd,19800101,budi_80,pass123\nSiti Aminah M.Pd,19850202,siti_85,pass456"
	StudentTemplateCSV = "Nama,NIS,Nama Kelas,L/P\nAchmad Fikri,1001,X MIPA 1,L\nDewi Sartika,1002,X MIPA 1,P"
)

func splitRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, ",")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		rows = append(rows, cols)
	}
	if len(rows) == 0 {
		return nil
	}
	return rows[1:] // header row is ignored
}

func col(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ParseTeachersCSV turns Name,NIP,Username,Password rows into teachers
// with empty class/subject assignments. Ids are assigned by the store.
func ParseTeachersCSV(text string) []models.Teacher {
	var out []models.Teacher
	for _, row := range splitRows(text) {
		out = append(out, models.Teacher{
			Name:       col(row, 0),
			NIP:        col(row, 1),
			Username:   col(row, 2),
			Password:   col(row, 3),
			ClassIDs:   []string{},
			SubjectIDs: []string{},
		})
	}
	return out
}

// ParseStudentsCSV turns Name,NIS,ClassName,Gender rows into students.
// Rows whose class name matches no existing class (case-insensitive) are
// dropped silently; gender becomes P only on an exact case-insensitive
// "P", otherwise L.
func ParseStudentsCSV(text string, classes []models.StudentClass) []models.Student {
	var out []models.Student
	for _, row := range splitRows(text) {
		className := col(row, 2)
		var classID string
		for _, c := range classes {
			if strings.EqualFold(c.Name, className) {
				classID = c.ID
				break
			}
		}
		if classID == "" {
			continue
		}
		gender := "L"
		if strings.EqualFold(col(row, 3), "P") {
			gender = "P"
		}
		out = append(out, models.Student{
			Name:    col(row, 0),
			NIS:     col(row, 1),
			ClassID: classID,
			Gender:  gender,
		})
	}
	return out
}
