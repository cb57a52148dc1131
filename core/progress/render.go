package progress

import (
	"fmt"
	"strconv"
)

// NotApplicable renders practical figures of a subject without practicals.
const NotApplicable = "NA"

// Cells is the rendered form of a ReportRow, one field per report column.
type Cells struct {
	SR                 int    `json:"sr" csv:"SR"`
	Class              string `json:"class" csv:"Class"`
	Subject            string `json:"subject" csv:"Subject"`
	Faculty            string `json:"faculty" csv:"Faculty"`
	TargetSem          string `json:"target_sem" csv:"Target/SEM"`
	Planned            string `json:"planned" csv:"Planned"`
	Conducted          string `json:"conducted" csv:"Conducted"`
	Cumulative         string `json:"cumulative" csv:"Cumul."`
	Percent            string `json:"percent" csv:"%"`
	SyllabusMonth      string `json:"syllabus_month" csv:"Syllabus %"`
	SyllabusCumulative string `json:"syllabus_cumulative" csv:"Syll. Cumul."`
	PracticalTotal     string `json:"practical_total" csv:"Pract. Total"`
	PracticalCompleted string `json:"practical_completed" csv:"Pract. Done"`
	Assignments        string `json:"assignments" csv:"Assignments"`
}

// Columns are the report column headers, in Cells order.
var Columns = []string{
	"SR", "Class", "Subject", "Faculty", "Target/SEM", "Planned", "Conducted", "Cumul.", "%",
	"Syllabus %", "Syll. Cumul.", "Pract. Total", "Pract. Done", "Assignments",
}

// Values returns the cells in Columns order.
func (c Cells) Values() []string {
	return []string{
		strconv.Itoa(c.SR), c.Class, c.Subject, c.Faculty, c.TargetSem, c.Planned, c.Conducted, c.Cumulative,
		c.Percent, c.SyllabusMonth, c.SyllabusCumulative, c.PracticalTotal, c.PracticalCompleted, c.Assignments,
	}
}

// Render returns the cells of the row at 1-based position sr.
func Render(sr int, row ReportRow) Cells {
	class := Placeholder
	if row.Class.IsValid() {
		class = row.Class.Label()
	}
	return Cells{
		SR:                 sr,
		Class:              class,
		Subject:            row.SubjectName,
		Faculty:            row.FacultyName,
		TargetSem:          row.TargetSem.Text(Placeholder),
		Planned:            row.LecturesPlannedMonth.Text(Placeholder),
		Conducted:          row.LecturesConductedMonth.Text(Placeholder),
		Cumulative:         row.LecturesCumulative.Text(Placeholder),
		Percent:            fmt.Sprintf("%d%%", row.LecturePercent),
		SyllabusMonth:      percentText(row.SyllabusCompletedMonth),
		SyllabusCumulative: percentText(row.SyllabusCumulative),
		PracticalTotal:     practicalText(row.PracticalTotal, row.PracticalTotal),
		PracticalCompleted: practicalText(row.PracticalCompleted, row.PracticalTotal),
		Assignments:        assignmentsText(row.AssignmentsTillDate, row.AssignmentsOutOf),
	}
}

// RenderAll renders rows in order, numbering them from 1.
func RenderAll(rows []ReportRow) []Cells {
	cells := make([]Cells, 0, len(rows))
	for i, row := range rows {
		cells = append(cells, Render(i+1, row))
	}
	return cells
}

func percentText(f Field) string {
	if f.IsAbsent() {
		return Placeholder
	}
	return f.Text("") + "%"
}

// practicalText is NA whenever the subject has no practicals, whatever f holds.
func practicalText(f, total Field) string {
	if f.IsAbsent() || Normalize(total) <= 0 {
		return NotApplicable
	}
	return f.Text("")
}

func assignmentsText(till, outOf Field) string {
	if Normalize(outOf) <= 0 {
		return Placeholder
	}
	return till.Text("0") + " / " + outOf.Text("")
}
