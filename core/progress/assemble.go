package progress

import "sort"

// Placeholder renders a missing value.
const Placeholder = "-"

// AssembleRow flattens a Record. A missing subject or submitter degrades to placeholders.
func AssembleRow(rec Record) ReportRow {
	row := ReportRow{
		Metrics:        rec.Metrics,
		SubjectID:      rec.SubjectID,
		SubjectName:    Placeholder,
		FacultyName:    Placeholder,
		LecturePercent: rec.LecturePercent(),
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.Subject != nil {
		if rec.Subject.Name != "" {
			row.SubjectName = rec.Subject.Name
		}
		row.Class = rec.Subject.Class
	}
	if rec.Submitter != nil && rec.Submitter.Username != "" {
		row.FacultyName = rec.Submitter.Username
	}
	return row
}

// Aggregate returns a sorted copy of rows: by class rank (FE, SE, TE, BE) then subject name.
// Rows without a known class come first. The sort is stable.
func Aggregate(rows []ReportRow) []ReportRow {
	sorted := make([]ReportRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Class.Rank(), sorted[j].Class.Rank()
		if ri != rj {
			return ri < rj
		}
		return sorted[i].SubjectName < sorted[j].SubjectName
	})
	return sorted
}

// BuildReport assembles every record and aggregates the rows.
func BuildReport(records []Record) []ReportRow {
	rows := make([]ReportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, AssembleRow(rec))
	}
	return Aggregate(rows)
}
