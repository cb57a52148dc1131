package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/user"
)

var (
	// errors
	ErrNotFound    = errors.New("progress not found")
	ErrNotAssigned = errors.New("subject is not assigned to this staff")
	ErrForbidden   = errors.New("permission denied")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		GetSubmission(ctx context.Context, staffID, subjectID string, exec ...core.DBExecutor) (Submission, error)
		// UpsertSubmission inserts or replaces the submission of the (staff, subject) pair.
		UpsertSubmission(ctx context.Context, sub Submission, exec ...core.DBExecutor) (Submission, error)
		// QueryRecords returns every submission with its subject and submitter, in no particular order.
		QueryRecords(ctx context.Context, exec ...core.DBExecutor) ([]Record, error)
	}

	// AssignmentChecker tells whether a subject is assigned to a staff user.
	AssignmentChecker interface {
		IsAssigned(ctx context.Context, staffID, subjectID string) (bool, error)
	}

	Service struct {
		repo        Repository
		assignments AssignmentChecker
	}
)

func NewService(repo Repository, assignments AssignmentChecker) *Service {
	return &Service{repo: repo, assignments: assignments}
}

func (svc *Service) checkStaff(ctx context.Context, sess user.Session, subjectID string) error {
	if err := sess.Valid(NowFunc()); err != nil {
		return err
	}
	if !sess.IsStaff() {
		return ErrForbidden
	}
	ok, err := svc.assignments.IsAssigned(ctx, sess.UserID, subjectID)
	if err != nil {
		return errors.Wrap(err, "checking assignment")
	}
	if !ok {
		return ErrNotAssigned
	}
	return nil
}

// Get returns the session user's submission for the subject, or an empty one when none was made yet.
func (svc *Service) Get(ctx context.Context, sess user.Session, subjectID string) (Submission, error) {
	if err := svc.checkStaff(ctx, sess, subjectID); err != nil {
		return Submission{}, err
	}
	sub, err := svc.repo.GetSubmission(ctx, sess.UserID, subjectID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Submission{StaffID: sess.UserID, SubjectID: subjectID}, nil
		}
		return Submission{}, errors.Wrap(err, "getting submission")
	}
	return sub, nil
}

// Upsert stores the normalized form as the session user's submission for the subject.
func (svc *Service) Upsert(ctx context.Context, sess user.Session, subjectID string, form Metrics) (Submission, error) {
	if err := svc.checkStaff(ctx, sess, subjectID); err != nil {
		return Submission{}, err
	}
	sub := Submission{
		Metrics:   form.Normalized(),
		StaffID:   sess.UserID,
		SubjectID: subjectID,
		UpdatedAt: NowFunc().UTC(),
	}
	return svc.repo.UpsertSubmission(ctx, sub)
}

// Preview is the lecture completion percentage the form would be reported with.
func (svc *Service) Preview(form Metrics) int {
	return form.LecturePercent()
}

// Report builds the combined progress report. Only admins may read it.
func (svc *Service) Report(ctx context.Context, sess user.Session) ([]ReportRow, error) {
	if err := sess.Valid(NowFunc()); err != nil {
		return nil, err
	}
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	records, err := svc.repo.QueryRecords(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress records")
	}
	return BuildReport(records), nil
}
