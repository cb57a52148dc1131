package progress

import (
	"strings"
	"time"

	"github.com/campusdesk/portal/core/academic"
)

// Metrics are the progress figures a staff member fills for a subject.
type Metrics struct {
	TargetSem              Field `json:"target_sem"`
	LecturesPlannedMonth   Field `json:"lectures_planned_month"`
	LecturesConductedMonth Field `json:"lectures_conducted_month"`
	LecturesCumulative     Field `json:"lectures_cumulative"`
	SyllabusCompletedMonth Field `json:"syllabus_completed_month"`
	SyllabusCumulative     Field `json:"syllabus_cumulative"`
	PracticalTotal         Field `json:"practical_total"`
	PracticalCompleted     Field `json:"practical_completed"`
	AssignmentsTillDate    Field `json:"assignments_till_date"`
	AssignmentsOutOf       Field `json:"assignments_out_of"`
}

// Normalized is the form as it is stored: the target stays free text (absent when blank)
// and every other figure is replaced by its normalized number.
func (m Metrics) Normalized() Metrics {
	target := Absent()
	if s, ok := m.TargetSem.Raw(); ok && strings.TrimSpace(s) != "" {
		target = Text(strings.TrimSpace(s))
	}
	return Metrics{
		TargetSem:              target,
		LecturesPlannedMonth:   Number(Normalize(m.LecturesPlannedMonth)),
		LecturesConductedMonth: Number(Normalize(m.LecturesConductedMonth)),
		LecturesCumulative:     Number(Normalize(m.LecturesCumulative)),
		SyllabusCompletedMonth: Number(Normalize(m.SyllabusCompletedMonth)),
		SyllabusCumulative:     Number(Normalize(m.SyllabusCumulative)),
		PracticalTotal:         Number(Normalize(m.PracticalTotal)),
		PracticalCompleted:     Number(Normalize(m.PracticalCompleted)),
		AssignmentsTillDate:    Number(Normalize(m.AssignmentsTillDate)),
		AssignmentsOutOf:       Number(Normalize(m.AssignmentsOutOf)),
	}
}

// LecturePercent is the lecture completion percentage of the metrics.
func (m Metrics) LecturePercent() int {
	return LectureCompletionPercent(m.TargetSem, m.LecturesConductedMonth)
}

// Submission is the progress of one subject filled by one staff member.
// StaffID or SubjectID is empty once the referenced record was deleted.
type Submission struct {
	Metrics
	StaffID   string    `json:"staff_id"`
	SubjectID string    `json:"subject_id"`
	UpdatedAt time.Time `json:"updated_at"` // UTC; zero when never submitted
}

// Faculty is the submitter of a Submission.
type Faculty struct {
	ID       string
	Username string
}

// Record is a Submission with its related subject and submitter, nil when the relation is broken.
type Record struct {
	Submission
	Subject   *academic.Subject
	Submitter *Faculty
}

// ReportRow is a flattened Record with its derived figures.
type ReportRow struct {
	Metrics
	SubjectID      string             `json:"subject_id"`
	SubjectName    string             `json:"subject_name"`
	Class          academic.ClassRank `json:"class"`
	FacultyName    string             `json:"faculty_name"`
	LecturePercent int                `json:"lecture_percent"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
