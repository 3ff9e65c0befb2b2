package models

// AttendanceStatus is one of the five roll-call marks.
type AttendanceStatus string

const (
	Hadir      AttendanceStatus = "Hadir"
	Izin       AttendanceStatus = "Izin"
	Sakit      AttendanceStatus = "Sakit"
	Dispensasi AttendanceStatus = "Dispensasi"
	Alpa       AttendanceStatus = "Alpa"
)

// Letter returns the single-letter abbreviation used on printed reports
// (H/I/S/D/A). Unknown statuses fall back to Alpa's letter.
func (s AttendanceStatus) Letter() string {
	switch s {
	case Hadir:
		return "H"
	case Izin:
		return "I"
	case Sakit:
		return "S"
	case Dispensasi:
		return "D"
	default:
		return "A"
	}
}

// ViolationCategory is the severity class of a disciplinary criterion.
type ViolationCategory string

const (
	Ringan ViolationCategory = "Ringan"
	Sedang ViolationCategory = "Sedang"
	Berat  ViolationCategory = "Berat"
)

type Admin struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type Teacher struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	NIP        string   `json:"nip"`
	ClassIDs   []string `json:"classIds"`
	SubjectIDs []string `json:"subjectIds"`
	// Optional portal credentials. A teacher without them can still be
	// picked in the attendance form but cannot log in.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// ViolationStaff is a disciplinary-office (BK) login identity,
// independent of Teacher and Admin.
type ViolationStaff struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StudentClass is a homeroom/section label, e.g. "XII MIPA 1".
type StudentClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Student struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NIS     string `json:"nis"`
	ClassID string `json:"classId"`
	Gender  string `json:"gender"` // L or P
}

// Headmaster is a singleton: exactly one value exists at all times.
type Headmaster struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	NIP  string `json:"nip"`
}

type AttendanceDetail struct {
	StudentID string           `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceRecord is one class session's roll call.
type AttendanceRecord struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`      // YYYY-MM-DD
	Timestamp   string             `json:"timestamp"` // RFC3339 capture instant
	Day         string             `json:"day"`       // Senin, Selasa, ...
	Period      int                `json:"period"`    // jam ke-
	TeacherID   string             `json:"teacherId"`
	SubjectID   string             `json:"subjectId"`
	ClassID     string             `json:"classId"`
	JournalNote string             `json:"journalNote"`
	Details     []AttendanceDetail `json:"details"`
}

// ViolationCriterion is a catalog entry defining an infraction type and
// its point weight.
type ViolationCriterion struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category ViolationCategory `json:"category"`
	Points   int               `json:"points"`
}

// ViolationRecord is one logged infraction instance. Criterion and
// student are soft references: deleting the catalog entry or the student
// leaves the record in place.
type ViolationRecord struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	CriterionID string `json:"criterionId"`
	Date        string `json:"date"`
	Note        string `json:"note"`
	ReportedBy  string `json:"reportedBy"`
}

// AppState is the single persisted document holding every collection.
type AppState struct {
	Admins             []Admin              `json:"admins"`
	Teachers           []Teacher            `json:"teachers"`
	ViolationStaffs    []ViolationStaff     `json:"violationStaffs"`
	Subjects           []Subject            `json:"subjects"`
	Classes            []StudentClass       `json:"classes"`
	Students           []Student            `json:"students"`
	Records            []AttendanceRecord   `json:"records"`
	Headmaster         Headmaster           `json:"headmaster"`
	ViolationCriteria  []ViolationCriterion `json:"violationCriteria"`
	ViolationRecords   []ViolationRecord    `json:"violationRecords"`
}

// ClassByID returns the class with the given id, or nil.
func (s *AppState) ClassByID(id string) *StudentClass {
	for i := range s.Classes {
		if s.Classes[i].ID == id {
			return &s.Classes[i]
		}
	}
	return nil
}

// StudentByID returns the student with the given id, or nil.
func (s *AppState) StudentByID(id string) *Student {
	for i := range s.Students {
		if s.Students[i].ID == id {
			return &s.Students[i]
		}
	}
	return nil
}

// TeacherByID returns the teacher with the given id, or nil.
func (s *AppState) TeacherByID(id string) *Teacher {
	for i := range s.Teachers {
		if s.Teachers[i].ID == id {
			return &s.Teachers[i]
		}
	}
	return nil
}

// SubjectByID returns the subject with the given id, or nil.
func (s *AppState) SubjectByID(id string) *Subject {
	for i := range s.Subjects {
		if s.Subjects[i].ID == id {
			return &s.Subjects[i]
		}
	}
	return nil
}

// CriterionByID returns the violation criterion with the given id, or nil.
func (s *AppState) CriterionByID(id string) *ViolationCriterion {
	for i := range s.ViolationCriteria {
		if s.ViolationCriteria[i].ID == id {
			return &s.ViolationCriteria[i]
		}
	}
	return nil
}
