package boiledrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
)

const progressColumns = `p.staff_id, p.subject_id, p.target_sem,
	p.lectures_planned_month, p.lectures_conducted_month, p.lectures_cumulative,
	p.syllabus_completed_month, p.syllabus_cumulative, p.practical_total, p.practical_completed,
	p.assignments_till_date, p.assignments_out_of, p.updated_at`

type progressRow struct {
	StaffID                null.String    `boil:"staff_id"`
	SubjectID              null.String    `boil:"subject_id"`
	TargetSem              progress.Field `boil:"target_sem"`
	LecturesPlannedMonth   progress.Field `boil:"lectures_planned_month"`
	LecturesConductedMonth progress.Field `boil:"lectures_conducted_month"`
	LecturesCumulative     progress.Field `boil:"lectures_cumulative"`
	SyllabusCompletedMonth progress.Field `boil:"syllabus_completed_month"`
	SyllabusCumulative     progress.Field `boil:"syllabus_cumulative"`
	PracticalTotal         progress.Field `boil:"practical_total"`
	PracticalCompleted     progress.Field `boil:"practical_completed"`
	AssignmentsTillDate    progress.Field `boil:"assignments_till_date"`
	AssignmentsOutOf       progress.Field `boil:"assignments_out_of"`
	UpdatedAt              time.Time      `boil:"updated_at"`
}

type recordRow struct {
	progressRow `boil:",bind"`

	SubjectName      null.String `boil:"subject_name"`
	SubjectClass     null.String `boil:"subject_class"`
	SubjectCreatedAt null.Time   `boil:"subject_created_at"`
	StaffUsername    null.String `boil:"staff_username"`
}

type progressRepository struct {
	exec core.DBExecutor
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(exec core.DBExecutor) *progressRepository {
	return &progressRepository{exec: exec}
}

func (repo progressRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo progressRepository) unboil(row progressRow) progress.Submission {
	return progress.Submission{
		Metrics: progress.Metrics{
			TargetSem:              row.TargetSem,
			LecturesPlannedMonth:   row.LecturesPlannedMonth,
			LecturesConductedMonth: row.LecturesConductedMonth,
			LecturesCumulative:     row.LecturesCumulative,
			SyllabusCompletedMonth: row.SyllabusCompletedMonth,
			SyllabusCumulative:     row.SyllabusCumulative,
			PracticalTotal:         row.PracticalTotal,
			PracticalCompleted:     row.PracticalCompleted,
			AssignmentsTillDate:    row.AssignmentsTillDate,
			AssignmentsOutOf:       row.AssignmentsOutOf,
		},
		StaffID:   row.StaffID.String,
		SubjectID: row.SubjectID.String,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func (repo progressRepository) unboilRecord(row recordRow) progress.Record {
	rec := progress.Record{Submission: repo.unboil(row.progressRow)}
	if row.SubjectID.Valid && row.SubjectName.Valid {
		rec.Subject = &academic.Subject{
			ID:        row.SubjectID.String,
			Name:      row.SubjectName.String,
			Class:     academic.ClassRank(row.SubjectClass.String),
			CreatedAt: row.SubjectCreatedAt.Time,
		}
	}
	if row.StaffID.Valid && row.StaffUsername.Valid {
		rec.Submitter = &progress.Faculty{ID: row.StaffID.String, Username: row.StaffUsername.String}
	}
	return rec
}

// trapNoRowsErr maps psql "no rows" err to progress.ErrNotFound
func (repo progressRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return progress.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo progressRepository) GetSubmission(ctx context.Context, staffID, subjectID string, exec ...core.DBExecutor) (progress.Submission, error) {
	if _, err := uuid.Parse(staffID); err != nil {
		return progress.Submission{}, progress.ErrNotFound
	}
	if _, err := uuid.Parse(subjectID); err != nil {
		return progress.Submission{}, progress.ErrNotFound
	}

	var row progressRow
	err := queries.Raw(
		"SELECT "+progressColumns+" FROM staff_subject_progress p WHERE p.staff_id = $1 AND p.subject_id = $2",
		staffID, subjectID,
	).Bind(ctx, repo.getExec(exec), &row)
	if err != nil {
		return progress.Submission{}, repo.trapNoRowsErr(err, "finding progress")
	}
	return repo.unboil(row), nil
}

func (repo progressRepository) UpsertSubmission(ctx context.Context, sub progress.Submission, exec ...core.DBExecutor) (progress.Submission, error) {
	var row progressRow
	err := queries.Raw(`INSERT INTO staff_subject_progress AS p (
			staff_id, subject_id, target_sem,
			lectures_planned_month, lectures_conducted_month, lectures_cumulative,
			syllabus_completed_month, syllabus_cumulative, practical_total, practical_completed,
			assignments_till_date, assignments_out_of, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (staff_id, subject_id) DO UPDATE SET
			target_sem = EXCLUDED.target_sem,
			lectures_planned_month = EXCLUDED.lectures_planned_month,
			lectures_conducted_month = EXCLUDED.lectures_conducted_month,
			lectures_cumulative = EXCLUDED.lectures_cumulative,
			syllabus_completed_month = EXCLUDED.syllabus_completed_month,
			syllabus_cumulative = EXCLUDED.syllabus_cumulative,
			practical_total = EXCLUDED.practical_total,
			practical_completed = EXCLUDED.practical_completed,
			assignments_till_date = EXCLUDED.assignments_till_date,
			assignments_out_of = EXCLUDED.assignments_out_of,
			updated_at = EXCLUDED.updated_at
		RETURNING `+progressColumns,
		sub.StaffID, sub.SubjectID, sub.TargetSem,
		sub.LecturesPlannedMonth, sub.LecturesConductedMonth, sub.LecturesCumulative,
		sub.SyllabusCompletedMonth, sub.SyllabusCumulative, sub.PracticalTotal, sub.PracticalCompleted,
		sub.AssignmentsTillDate, sub.AssignmentsOutOf, sub.UpdatedAt.UTC(),
	).Bind(ctx, repo.getExec(exec), &row)
	if err != nil {
		return progress.Submission{}, errors.Wrap(err, "upserting progress")
	}
	return repo.unboil(row), nil
}

func (repo progressRepository) QueryRecords(ctx context.Context, exec ...core.DBExecutor) ([]progress.Record, error) {
	var rows []recordRow
	err := queries.Raw(`SELECT ` + progressColumns + `,
			s.name AS subject_name, s.class AS subject_class, s.created_at AS subject_created_at,
			u.username AS staff_username
		FROM staff_subject_progress p
		LEFT JOIN subjects s ON s.id = p.subject_id
		LEFT JOIN app_users u ON u.id = p.staff_id`,
	).Bind(ctx, repo.getExec(exec), &rows)
	if err != nil && errors.Cause(err) != sql.ErrNoRows {
		return nil, errors.Wrap(err, "querying progress records")
	}

	records := make([]progress.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, repo.unboilRecord(row))
	}
	return records, nil
}
