package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campusdesk/portal/core/academic"
)

func newRecord(subjName string, class academic.ClassRank, faculty string) Record {
	rec := Record{
		Submission: Submission{
			Metrics: Metrics{
				TargetSem:              Text("10"),
				LecturesConductedMonth: Number(5),
			},
			StaffID:   "staff-" + faculty,
			SubjectID: "subj-" + subjName,
			UpdatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	}
	if subjName != "" {
		rec.Subject = &academic.Subject{ID: rec.SubjectID, Name: subjName, Class: class}
	}
	if faculty != "" {
		rec.Submitter = &Faculty{ID: rec.StaffID, Username: faculty}
	}
	return rec
}

func TestAssembleRow(t *testing.T) {
	row := AssembleRow(newRecord("Data Structures", academic.ClassSE, "ravi"))
	assert.Equal(t, "Data Structures", row.SubjectName)
	assert.Equal(t, academic.ClassSE, row.Class)
	assert.Equal(t, "ravi", row.FacultyName)
	assert.Equal(t, 50, row.LecturePercent)
	assert.Equal(t, Text("10"), row.TargetSem)

	t.Run("dangling subject", func(t *testing.T) {
		row := AssembleRow(newRecord("", "", "ravi"))
		assert.Equal(t, Placeholder, row.SubjectName)
		assert.Equal(t, academic.ClassRank(""), row.Class)
		assert.Equal(t, "ravi", row.FacultyName)
		assert.Equal(t, 50, row.LecturePercent)
	})

	t.Run("dangling submitter", func(t *testing.T) {
		row := AssembleRow(newRecord("Maths", academic.ClassFE, ""))
		assert.Equal(t, "Maths", row.SubjectName)
		assert.Equal(t, Placeholder, row.FacultyName)
	})

	t.Run("blank names", func(t *testing.T) {
		rec := newRecord("Maths", academic.ClassFE, "ravi")
		rec.Subject.Name = ""
		rec.Submitter.Username = ""
		row := AssembleRow(rec)
		assert.Equal(t, Placeholder, row.SubjectName)
		assert.Equal(t, Placeholder, row.FacultyName)
	})
}

func subjectNames(rows []ReportRow) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.SubjectName)
	}
	return names
}

func TestAggregate(t *testing.T) {
	rows := []ReportRow{
		AssembleRow(newRecord("Compilers", academic.ClassBE, "a")),
		AssembleRow(newRecord("Physics", academic.ClassFE, "b")),
		AssembleRow(newRecord("Networks", academic.ClassTE, "c")),
		AssembleRow(newRecord("DBMS", academic.ClassSE, "d")),
	}

	got := Aggregate(rows)
	assert.Equal(t, []string{"Physics", "DBMS", "Networks", "Compilers"}, subjectNames(got))
	assert.Equal(t, "Compilers", rows[0].SubjectName, "input must not be reordered")

	t.Run("by name within class", func(t *testing.T) {
		got := Aggregate([]ReportRow{
			AssembleRow(newRecord("maths", academic.ClassFE, "a")),
			AssembleRow(newRecord("Physics", academic.ClassFE, "b")),
			AssembleRow(newRecord("Chemistry", academic.ClassFE, "c")),
			AssembleRow(newRecord("Algorithms", academic.ClassSE, "d")),
		})
		// case-sensitive: upper-case letters sort before lower-case ones
		assert.Equal(t, []string{"Chemistry", "Physics", "maths", "Algorithms"}, subjectNames(got))
	})

	t.Run("stable on ties", func(t *testing.T) {
		got := Aggregate([]ReportRow{
			AssembleRow(newRecord("Maths", academic.ClassFE, "first")),
			AssembleRow(newRecord("Maths", academic.ClassFE, "second")),
			AssembleRow(newRecord("Maths", academic.ClassFE, "third")),
		})
		assert.Equal(t, "first", got[0].FacultyName)
		assert.Equal(t, "second", got[1].FacultyName)
		assert.Equal(t, "third", got[2].FacultyName)
	})

	t.Run("dangling rows are kept first", func(t *testing.T) {
		got := Aggregate([]ReportRow{
			AssembleRow(newRecord("Maths", academic.ClassFE, "a")),
			AssembleRow(newRecord("", "", "b")),
		})
		assert.Len(t, got, 2)
		assert.Equal(t, []string{Placeholder, "Maths"}, subjectNames(got))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Aggregate(rows)
		assert.Equal(t, once, Aggregate(once))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil))
	})
}

func TestBuildReport(t *testing.T) {
	records := []Record{
		newRecord("Compilers", academic.ClassBE, "a"),
		newRecord("", "", "b"),
		newRecord("Physics", academic.ClassFE, ""),
	}
	rows := BuildReport(records)
	assert.Len(t, rows, len(records))
	assert.Equal(t, []string{Placeholder, "Physics", "Compilers"}, subjectNames(rows))
	assert.Equal(t, Placeholder, rows[1].FacultyName)
}
