package report

import "github.com/sman1kwanyar/presensi/internal/models"

// GenderAttendance splits present vs. not-present detail entries by the
// student's gender. Details of deleted students are skipped.
type GenderAttendance struct {
	Name       string `json:"name"`
	Hadir      int    `json:"hadir"`
	TidakHadir int    `json:"tidakHadir"`
}

// Dashboard is the admin landing view: headline counts plus the chart
// inputs.
type Dashboard struct {
	TotalStudents    int                            `json:"totalStudents"`
	TotalTeachers    int                            `json:"totalTeachers"`
	TotalSubjects    int                            `json:"totalSubjects"`
	MaleCount        int                            `json:"maleCount"`
	FemaleCount      int                            `json:"femaleCount"`
	StatusCounts     map[models.AttendanceStatus]int `json:"statusCounts"`
	GenderAttendance []GenderAttendance             `json:"genderAttendance"`
	ClassAttendance  []ClassRate                    `json:"classAttendance"`
}

// BuildDashboard computes the dashboard from one snapshot.
func BuildDashboard(state models.AppState) Dashboard {
	d := Dashboard{
		TotalStudents: len(state.Students),
		TotalTeachers: len(state.Teachers),
		TotalSubjects: len(state.Subjects),
		StatusCounts:  GlobalStatusCounts(state),
		GenderAttendance: []GenderAttendance{
			{Name: "Laki-laki"},
			{Name: "Perempuan"},
		},
		ClassAttendance: ClassAttendanceRank(state, 10),
	}
	for _, s := range state.Students {
		if s.Gender == "L" {
			d.MaleCount++
		} else {
			d.FemaleCount++
		}
	}
	for _, r := range state.Records {
		for _, det := range r.Details {
			stu := state.StudentByID(det.StudentID)
			if stu == nil {
				continue
			}
			idx := 1
			if stu.Gender == "L" {
				idx = 0
			}
			if det.Status == models.Hadir {
				d.GenderAttendance[idx].Hadir++
			} else {
				d.GenderAttendance[idx].TidakHadir++
			}
		}
	}
	return d
}
