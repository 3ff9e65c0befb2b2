package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sman1kwanyar/presensi/internal/models"
)

// DailyStatus is one student's row on the daily report: the distinct
// status letters observed, the sorted periods, and the capture times.
type DailyStatus struct {
	Status string
	Period string
	Time   string
}

// DailyStudentStatus summarizes the given student across the filtered
// records. Cells show "-" when the student appears in none of them.
func DailyStudentStatus(records []models.AttendanceRecord, studentID string, loc *time.Location) DailyStatus {
	var letters []string
	var periods []int
	var times []string
	seen := map[string]bool{}
	for _, r := range records {
		for _, d := range r.Details {
			if d.StudentID != studentID {
				continue
			}
			if l := d.Status.Letter(); !seen[l] {
				seen[l] = true
				letters = append(letters, l)
			}
			periods = append(periods, r.Period)
			times = append(times, models.FormatCaptureTime(r.Timestamp, loc))
			break
		}
	}
	if len(periods) == 0 {
		return DailyStatus{Status: "-", Period: "-", Time: "-"}
	}
	sort.Ints(periods)
	ps := make([]string, len(periods))
	for i, p := range periods {
		ps[i] = strconv.Itoa(p)
	}
	return DailyStatus{
		Status: strings.Join(letters, ", "),
		Period: strings.Join(ps, ", "),
		Time:   strings.Join(times, ", "),
	}
}

// Tally counts the five statuses.
type Tally struct {
	H int `json:"h"`
	S int `json:"s"`
	I int `json:"i"`
	D int `json:"d"`
	A int `json:"a"`
}

func (t *Tally) add(s models.AttendanceStatus) {
	switch s {
	case models.Hadir:
		t.H++
	case models.Sakit:
		t.S++
	case models.Izin:
		t.I++
	case models.Dispensasi:
		t.D++
	default:
		t.A++
	}
}

// MonthlyTally counts the given student's statuses across the filtered
// records' details.
func MonthlyTally(records []models.AttendanceRecord, studentID string) Tally {
	var t Tally
	for _, r := range records {
		for _, d := range r.Details {
			if d.StudentID == studentID {
				t.add(d.Status)
			}
		}
	}
	return t
}

// StudentTally is one student's monthly summary row.
type StudentTally struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NIS    string `json:"nis"`
	Gender string `json:"gender"`
	Tally
}

// MonthlySummary builds the per-student tally table for the filtered
// class, in stored student order.
func MonthlySummary(state models.AppState, f Filter) []StudentTally {
	records := AttendanceRecords(state, f)
	students := ClassStudents(state, f.ClassID)
	out := make([]StudentTally, 0, len(students))
	for _, s := range students {
		out = append(out, StudentTally{
			ID: s.ID, Name: s.Name, NIS: s.NIS, Gender: s.Gender,
			Tally: MonthlyTally(records, s.ID),
		})
	}
	return out
}

// Totals sums every status across the filtered population; the footer
// row of both report types.
func Totals(state models.AppState, f Filter) Tally {
	records := AttendanceRecords(state, f)
	var total Tally
	for _, s := range ClassStudents(state, f.ClassID) {
		for _, r := range records {
			for _, d := range r.Details {
				if d.StudentID == s.ID {
					total.add(d.Status)
				}
			}
		}
	}
	return total
}

// ClassRate is one entry of the class attendance-rate ranking.
type ClassRate struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
	Total   int    `json:"total"`
}

// ClassAttendanceRank ranks classes by the fraction of details marked
// Hadir over all details in that class's records, as a rounded integer
// percentage, descending, capped at topN. Classes with no details are
// omitted.
func ClassAttendanceRank(state models.AppState, topN int) []ClassRate {
	var out []ClassRate
	for _, cls := range state.Classes {
		present, total := 0, 0
		for _, r := range state.Records {
			if r.ClassID != cls.ID {
				continue
			}
			for _, d := range r.Details {
				total++
				if d.Status == models.Hadir {
					present++
				}
			}
		}
		if total == 0 {
			continue
		}
		out = append(out, ClassRate{
			Name:    cls.Name,
			Percent: int(float64(present)/float64(total)*100 + 0.5),
			Total:   total,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// GlobalStatusCounts tallies every detail entry of every record; feeds
// the dashboard pie and the narrative insight prompt.
func GlobalStatusCounts(state models.AppState) map[models.AttendanceStatus]int {
	counts := map[models.AttendanceStatus]int{
		models.Hadir: 0, models.Izin: 0, models.Sakit: 0,
		models.Dispensasi: 0, models.Alpa: 0,
	}
	for _, r := range state.Records {
		for _, d := range r.Details {
			if _, ok := counts[d.Status]; ok {
				counts[d.Status]++
			}
		}
	}
	return counts
}

// TeacherActivity lists today's sessions, most recent capture first.
func TeacherActivity(state models.AppState, date string) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, r := range state.Records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}
