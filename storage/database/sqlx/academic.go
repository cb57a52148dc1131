package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
)

const (
	subjectColumns = `s.id, s.name, s.class, s.created_at`
	// orders subjects FE, SE, TE, BE then by name
	subjectOrderBy = `array_position(ARRAY['fe', 'se', 'te', 'be'], s.class), s.name COLLATE "C"`
)

type academicRepository struct {
	baseRepository
}

var _ academic.Repository = (*academicRepository)(nil) // interface compliance check

func NewAcademicRepository(exec core.DBExecutor) *academicRepository {
	return &academicRepository{baseRepository{exec: exec}}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (repo academicRepository) CreateSubject(ctx context.Context, subj academic.Subject, exec ...core.DBExecutor) (academic.Subject, error) {
	subj.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO subjects (id, name, class, created_at) VALUES ($1, $2, $3, $4)`,
		subj.ID, subj.Name, string(subj.Class), subj.CreatedAt.UTC(),
	)
	if err != nil {
		return academic.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return subj, nil
}

func (repo academicRepository) QuerySubjects(ctx context.Context, class academic.ClassRank, exec ...core.DBExecutor) ([]academic.Subject, error) {
	var where whereBuilder
	if class != "" {
		where.add("s.class = ?", string(class))
	}

	subjects := make([]academic.Subject, 0)
	q := "SELECT " + subjectColumns + " FROM subjects s" + where.String() + " ORDER BY " + subjectOrderBy
	if err := selectInto(ctx, repo.getExec(exec), &subjects, q, where.args...); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo academicRepository) GetSubject(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Subject, error) {
	if !validID(id) {
		return academic.Subject{}, academic.ErrNotFound
	}
	subjects := make([]academic.Subject, 0, 1)
	q := "SELECT " + subjectColumns + " FROM subjects s WHERE s.id = $1"
	if err := selectInto(ctx, repo.getExec(exec), &subjects, q, id); err != nil {
		return academic.Subject{}, errors.Wrap(err, "finding subject")
	}
	if len(subjects) == 0 {
		return academic.Subject{}, academic.ErrNotFound
	}
	return subjects[0], nil
}

func (repo academicRepository) UpdateSubject(ctx context.Context, subj academic.Subject, exec ...core.DBExecutor) (academic.Subject, error) {
	res, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE subjects SET name = $2, class = $3 WHERE id = $1`,
		subj.ID, subj.Name, string(subj.Class),
	)
	if err != nil {
		return academic.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := rowsAffected(res); err != nil {
		return academic.Subject{}, errors.Wrap(err, "updating subject")
	} else if n == 0 {
		return academic.Subject{}, academic.ErrNotFound
	}
	return subj, nil
}

func (repo academicRepository) DeleteSubject(ctx context.Context, id string, exec ...core.DBExecutor) error {
	if !validID(id) {
		return academic.ErrNotFound
	}
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if n, err := rowsAffected(res); err != nil {
		return errors.Wrap(err, "deleting subject")
	} else if n == 0 {
		return academic.ErrNotFound
	}
	return nil
}

func (repo academicRepository) CreateAssignment(ctx context.Context, asg academic.Assignment, exec ...core.DBExecutor) (academic.Assignment, error) {
	asg.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO staff_subject_assignments (id, staff_id, subject_id, created_at) VALUES ($1, $2, $3, $4)`,
		asg.ID, asg.StaffID, asg.SubjectID, asg.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return academic.Assignment{}, academic.ErrAssignmentExists
		}
		return academic.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return asg, nil
}

func (repo academicRepository) QueryAssignments(ctx context.Context, exec ...core.DBExecutor) ([]academic.AssignmentDetail, error) {
	details := make([]academic.AssignmentDetail, 0)
	q := `SELECT a.id, a.staff_id, a.subject_id, a.created_at,
			u.username AS staff_username, s.name AS subject_name, s.class AS subject_class
		FROM staff_subject_assignments a
		JOIN app_users u ON u.id = a.staff_id
		JOIN subjects s ON s.id = a.subject_id
		ORDER BY a.created_at DESC, a.id`
	if err := selectInto(ctx, repo.getExec(exec), &details, q); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return details, nil
}

func (repo academicRepository) GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Assignment, error) {
	if !validID(id) {
		return academic.Assignment{}, academic.ErrNotFound
	}
	assignments := make([]academic.Assignment, 0, 1)
	q := `SELECT id, staff_id, subject_id, created_at FROM staff_subject_assignments WHERE id = $1`
	if err := selectInto(ctx, repo.getExec(exec), &assignments, q, id); err != nil {
		return academic.Assignment{}, errors.Wrap(err, "finding assignment")
	}
	if len(assignments) == 0 {
		return academic.Assignment{}, academic.ErrNotFound
	}
	return assignments[0], nil
}

func (repo academicRepository) DeleteAssignment(ctx context.Context, id string, exec ...core.DBExecutor) error {
	if !validID(id) {
		return academic.ErrNotFound
	}
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM staff_subject_assignments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if n, err := rowsAffected(res); err != nil {
		return errors.Wrap(err, "deleting assignment")
	} else if n == 0 {
		return academic.ErrNotFound
	}
	return nil
}

func (repo academicRepository) AssignmentExists(ctx context.Context, staffID, subjectID string, exec ...core.DBExecutor) (bool, error) {
	if !validID(staffID) || !validID(subjectID) {
		return false, nil
	}
	var exists bool
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM staff_subject_assignments WHERE staff_id = $1 AND subject_id = $2)`,
		staffID, subjectID,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "checking assignment")
	}
	return exists, nil
}

func (repo academicRepository) QueryStaffSubjects(ctx context.Context, staffID string, exec ...core.DBExecutor) ([]academic.Subject, error) {
	subjects := make([]academic.Subject, 0)
	if !validID(staffID) {
		return subjects, nil
	}
	q := "SELECT " + subjectColumns + ` FROM subjects s
		JOIN staff_subject_assignments a ON a.subject_id = s.id
		WHERE a.staff_id = $1
		ORDER BY ` + subjectOrderBy
	if err := selectInto(ctx, repo.getExec(exec), &subjects, q, staffID); err != nil {
		return nil, errors.Wrap(err, "querying staff subjects")
	}
	return subjects, nil
}
