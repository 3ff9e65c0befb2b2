package report

import "github.com/sman1kwanyar/presensi/internal/models"

// ViolationStats is a total plus per-category breakdown.
type ViolationStats struct {
	Total  int `json:"total"`
	Ringan int `json:"ringan"`
	Sedang int `json:"sedang"`
	Berat  int `json:"berat"`
}

func (v *ViolationStats) add(cat models.ViolationCategory) {
	v.Total++
	switch cat {
	case models.Ringan:
		v.Ringan++
	case models.Sedang:
		v.Sedang++
	case models.Berat:
		v.Berat++
	}
}

// GlobalViolationStats counts every logged infraction. Records whose
// criterion was deleted count toward the total but no category.
func GlobalViolationStats(state models.AppState) ViolationStats {
	var stats ViolationStats
	for _, rec := range state.ViolationRecords {
		if crit := state.CriterionByID(rec.CriterionID); crit != nil {
			stats.add(crit.Category)
		} else {
			stats.Total++
		}
	}
	return stats
}

// FilteredViolationRecords returns the infractions matching the filter's
// date or month, and, when ClassID is set, whose student belongs to that
// class (records of deleted students never match a class filter).
func FilteredViolationRecords(state models.AppState, f Filter) []models.ViolationRecord {
	var out []models.ViolationRecord
	for _, rec := range state.ViolationRecords {
		if !f.matchDate(rec.Date) {
			continue
		}
		if f.ClassID != "" {
			stu := state.StudentByID(rec.StudentID)
			if stu == nil || stu.ClassID != f.ClassID {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// FilteredViolationStats aggregates the filtered infractions by category.
func FilteredViolationStats(state models.AppState, f Filter) ViolationStats {
	var stats ViolationStats
	for _, rec := range FilteredViolationRecords(state, f) {
		if crit := state.CriterionByID(rec.CriterionID); crit != nil {
			stats.add(crit.Category)
		} else {
			stats.Total++
		}
	}
	return stats
}

// ClassViolationStats is the headmaster view: per-class infraction counts
// under the filter, in stored class order.
type ClassViolationStats struct {
	ClassID string `json:"classId"`
	Name    string `json:"name"`
	ViolationStats
}

func ViolationStatsByClass(state models.AppState, f Filter) []ClassViolationStats {
	out := make([]ClassViolationStats, 0, len(state.Classes))
	for _, cls := range state.Classes {
		cf := f
		cf.ClassID = cls.ID
		out = append(out, ClassViolationStats{
			ClassID:        cls.ID,
			Name:           cls.Name,
			ViolationStats: FilteredViolationStats(state, cf),
		})
	}
	return out
}
