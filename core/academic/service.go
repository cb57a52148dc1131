package academic

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
)

var (
	// errors
	ErrNotFound         = errors.New("not found")
	ErrAssignmentExists = errors.New("this subject is already assigned to this staff")
	ErrNotStaff         = errors.New("user is not a staff member")
	ErrSubjectNotFound  = errors.New("subject not found")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, subj Subject, exec ...core.DBExecutor) (Subject, error)
		// QuerySubjects returns subjects ordered by class rank then name, optionally restricted to a class.
		QuerySubjects(ctx context.Context, class ClassRank, exec ...core.DBExecutor) ([]Subject, error)
		GetSubject(ctx context.Context, id string, exec ...core.DBExecutor) (Subject, error)
		UpdateSubject(ctx context.Context, subj Subject, exec ...core.DBExecutor) (Subject, error)
		DeleteSubject(ctx context.Context, id string, exec ...core.DBExecutor) error

		// CreateAssignment returns ErrAssignmentExists when the (staff, subject) pair already exists.
		CreateAssignment(ctx context.Context, asg Assignment, exec ...core.DBExecutor) (Assignment, error)
		QueryAssignments(ctx context.Context, exec ...core.DBExecutor) ([]AssignmentDetail, error)
		GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (Assignment, error)
		DeleteAssignment(ctx context.Context, id string, exec ...core.DBExecutor) error
		AssignmentExists(ctx context.Context, staffID, subjectID string, exec ...core.DBExecutor) (bool, error)
		// QueryStaffSubjects returns the subjects assigned to a staff user, ordered like QuerySubjects.
		QueryStaffSubjects(ctx context.Context, staffID string, exec ...core.DBExecutor) ([]Subject, error)
	}

	// StaffLookup tells whether a user exists and is a staff member.
	StaffLookup interface {
		IsStaff(ctx context.Context, id string) (bool, error)
	}

	Service struct {
		repo  Repository
		staff StaffLookup
	}
)

func NewService(repo Repository, staff StaffLookup) *Service {
	return &Service{repo: repo, staff: staff}
}

func (svc *Service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	subj := Subject{
		Name:      ns.Name,
		Class:     ns.Class,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateSubject(ctx, subj)
}

func (svc *Service) QuerySubjects(ctx context.Context, class ClassRank) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx, class)
}

func (svc *Service) GetSubject(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubject(ctx, id)
}

func (svc *Service) UpdateSubject(ctx context.Context, id string, us UpdateSubject) (Subject, error) {
	subj, err := svc.repo.GetSubject(ctx, id)
	if err != nil {
		return Subject{}, err
	}
	subj.Name = us.Name
	subj.Class = us.Class
	return svc.repo.UpdateSubject(ctx, subj)
}

func (svc *Service) DeleteSubject(ctx context.Context, id string) error {
	return svc.repo.DeleteSubject(ctx, id)
}

func (svc *Service) Assign(ctx context.Context, na NewAssignment) (Assignment, error) {
	isStaff, err := svc.staff.IsStaff(ctx, na.StaffID)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "looking up staff")
	}
	if !isStaff {
		return Assignment{}, core.NewValidationError(ErrNotStaff, core.FieldError{Field: "staff_id", Error: ErrNotStaff.Error()})
	}
	if _, err = svc.repo.GetSubject(ctx, na.SubjectID); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Assignment{}, core.NewValidationError(ErrSubjectNotFound, core.FieldError{Field: "subject_id", Error: ErrSubjectNotFound.Error()})
		}
		return Assignment{}, errors.Wrap(err, "finding subject")
	}

	asg, err := svc.repo.CreateAssignment(ctx, Assignment{
		StaffID:   na.StaffID,
		SubjectID: na.SubjectID,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Cause(err) == ErrAssignmentExists {
		return Assignment{}, core.NewValidationError(ErrAssignmentExists, core.FieldError{Field: "subject_id", Error: ErrAssignmentExists.Error()})
	}
	return asg, err
}

func (svc *Service) QueryAssignments(ctx context.Context) ([]AssignmentDetail, error) {
	return svc.repo.QueryAssignments(ctx)
}

func (svc *Service) Unassign(ctx context.Context, id string) error {
	if _, err := svc.repo.GetAssignment(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteAssignment(ctx, id)
}

// IsAssigned tells whether the subject is assigned to the staff user.
func (svc *Service) IsAssigned(ctx context.Context, staffID, subjectID string) (bool, error) {
	return svc.repo.AssignmentExists(ctx, staffID, subjectID)
}

func (svc *Service) StaffSubjects(ctx context.Context, staffID string) ([]Subject, error) {
	return svc.repo.QueryStaffSubjects(ctx, staffID)
}

// SortSubjects orders subjects by class rank then name.
func SortSubjects(subjects []Subject) {
	sort.SliceStable(subjects, func(i, j int) bool {
		ri, rj := subjects[i].Class.Rank(), subjects[j].Class.Rank()
		if ri != rj {
			return ri < rj
		}
		return subjects[i].Name < subjects[j].Name
	})
}
