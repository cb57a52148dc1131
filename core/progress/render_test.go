package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusdesk/portal/core/academic"
)

func TestRender(t *testing.T) {
	row := ReportRow{
		Metrics: Metrics{
			TargetSem:              Text("40"),
			LecturesPlannedMonth:   Number(12),
			LecturesConductedMonth: Number(10),
			LecturesCumulative:     Number(30),
			SyllabusCompletedMonth: Number(15),
			SyllabusCumulative:     Number(60),
			PracticalTotal:         Number(10),
			PracticalCompleted:     Number(4),
			AssignmentsTillDate:    Number(2),
			AssignmentsOutOf:       Number(5),
		},
		SubjectName:    "Operating Systems",
		Class:          academic.ClassTE,
		FacultyName:    "meera",
		LecturePercent: 25,
	}

	got := Render(3, row)
	want := Cells{
		SR:                 3,
		Class:              "TE",
		Subject:            "Operating Systems",
		Faculty:            "meera",
		TargetSem:          "40",
		Planned:            "12",
		Conducted:          "10",
		Cumulative:         "30",
		Percent:            "25%",
		SyllabusMonth:      "15%",
		SyllabusCumulative: "60%",
		PracticalTotal:     "10",
		PracticalCompleted: "4",
		Assignments:        "2 / 5",
	}
	assert.Equal(t, want, got)
	assert.Len(t, got.Values(), len(Columns))
	assert.Equal(t, "3", got.Values()[0])
	assert.Equal(t, "2 / 5", got.Values()[len(Columns)-1])
}

func TestRender_placeholders(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		check   func(t *testing.T, c Cells)
	}{
		{
			name:    "absent figures",
			metrics: Metrics{},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, Placeholder, c.TargetSem)
				assert.Equal(t, Placeholder, c.Planned)
				assert.Equal(t, Placeholder, c.Conducted)
				assert.Equal(t, Placeholder, c.Cumulative)
				assert.Equal(t, "0%", c.Percent)
				assert.Equal(t, Placeholder, c.SyllabusMonth)
				assert.Equal(t, Placeholder, c.SyllabusCumulative)
				assert.Equal(t, NotApplicable, c.PracticalTotal)
				assert.Equal(t, NotApplicable, c.PracticalCompleted)
				assert.Equal(t, Placeholder, c.Assignments)
			},
		},
		{
			name:    "zero practicals hide completed",
			metrics: Metrics{PracticalTotal: Number(0), PracticalCompleted: Number(7)},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, NotApplicable, c.PracticalTotal)
				assert.Equal(t, NotApplicable, c.PracticalCompleted)
			},
		},
		{
			name:    "absent practical total hides completed",
			metrics: Metrics{PracticalCompleted: Number(7)},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, NotApplicable, c.PracticalTotal)
				assert.Equal(t, NotApplicable, c.PracticalCompleted)
			},
		},
		{
			name:    "practicals without completed",
			metrics: Metrics{PracticalTotal: Number(8)},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, "8", c.PracticalTotal)
				assert.Equal(t, NotApplicable, c.PracticalCompleted)
			},
		},
		{
			name:    "zero assignments",
			metrics: Metrics{AssignmentsTillDate: Number(3), AssignmentsOutOf: Number(0)},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, Placeholder, c.Assignments)
			},
		},
		{
			name:    "assignments without till date",
			metrics: Metrics{AssignmentsOutOf: Number(4)},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, "0 / 4", c.Assignments)
			},
		},
		{
			name:    "zero syllabus is shown",
			metrics: Metrics{SyllabusCompletedMonth: Number(0)},
			check: func(t *testing.T, c Cells) {
				assert.Equal(t, "0%", c.SyllabusMonth)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := AssembleRow(Record{Submission: Submission{Metrics: tt.metrics}})
			tt.check(t, Render(1, row))
		})
	}
}

func TestRender_danglingRow(t *testing.T) {
	c := Render(1, AssembleRow(Record{}))
	assert.Equal(t, Placeholder, c.Class)
	assert.Equal(t, Placeholder, c.Subject)
	assert.Equal(t, Placeholder, c.Faculty)
}

func TestRenderAll(t *testing.T) {
	cells := RenderAll([]ReportRow{
		AssembleRow(newRecord("Physics", academic.ClassFE, "a")),
		AssembleRow(newRecord("DBMS", academic.ClassSE, "b")),
	})
	if assert.Len(t, cells, 2) {
		assert.Equal(t, 1, cells[0].SR)
		assert.Equal(t, "FE", cells[0].Class)
		assert.Equal(t, 2, cells[1].SR)
		assert.Equal(t, "SE", cells[1].Class)
	}
}
