package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
)

type academicRepository struct {
	db *DB
}

var _ academic.Repository = (*academicRepository)(nil) // interface compliance check

func NewAcademicRepository(db *DB) *academicRepository {
	return &academicRepository{db: db}
}

func (repo *academicRepository) CreateSubject(_ context.Context, subj academic.Subject, _ ...core.DBExecutor) (academic.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	subj.ID = uuid.New().String()
	repo.db.subjects[subj.ID] = &subj
	return subj, nil
}

func (repo *academicRepository) QuerySubjects(_ context.Context, class academic.ClassRank, _ ...core.DBExecutor) ([]academic.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	subjects := make([]academic.Subject, 0, len(repo.db.subjects))
	for _, subj := range repo.db.subjects {
		if class == "" || subj.Class == class {
			subjects = append(subjects, *subj)
		}
	}
	sortSubjects(subjects)
	return subjects, nil
}

func (repo *academicRepository) GetSubject(_ context.Context, id string, _ ...core.DBExecutor) (academic.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if subj, ok := repo.db.subjects[id]; ok {
		return *subj, nil
	}
	return academic.Subject{}, academic.ErrNotFound
}

func (repo *academicRepository) UpdateSubject(_ context.Context, subj academic.Subject, _ ...core.DBExecutor) (academic.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.subjects[subj.ID]; !ok {
		return academic.Subject{}, academic.ErrNotFound
	}
	repo.db.subjects[subj.ID] = &subj
	return subj, nil
}

func (repo *academicRepository) DeleteSubject(_ context.Context, id string, _ ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if !repo.db.deleteSubject(id) {
		return academic.ErrNotFound
	}
	return nil
}

func (repo *academicRepository) CreateAssignment(_ context.Context, asg academic.Assignment, _ ...core.DBExecutor) (academic.Assignment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, a := range repo.db.assignments {
		if a.StaffID == asg.StaffID && a.SubjectID == asg.SubjectID {
			return academic.Assignment{}, academic.ErrAssignmentExists
		}
	}
	asg.ID = uuid.New().String()
	repo.db.assignments[asg.ID] = &asg
	return asg, nil
}

func (repo *academicRepository) QueryAssignments(_ context.Context, _ ...core.DBExecutor) ([]academic.AssignmentDetail, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	details := make([]academic.AssignmentDetail, 0, len(repo.db.assignments))
	for _, asg := range repo.db.assignments {
		d := academic.AssignmentDetail{Assignment: *asg}
		if usr, ok := repo.db.users[asg.StaffID]; ok {
			d.StaffUsername = usr.Username
		}
		if subj, ok := repo.db.subjects[asg.SubjectID]; ok {
			d.SubjectName = subj.Name
			d.SubjectClass = subj.Class
		}
		details = append(details, d)
	}
	// newest first
	sort.SliceStable(details, func(i, j int) bool {
		if !details[i].CreatedAt.Equal(details[j].CreatedAt) {
			return details[i].CreatedAt.After(details[j].CreatedAt)
		}
		return details[i].ID < details[j].ID
	})
	return details, nil
}

func (repo *academicRepository) GetAssignment(_ context.Context, id string, _ ...core.DBExecutor) (academic.Assignment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if asg, ok := repo.db.assignments[id]; ok {
		return *asg, nil
	}
	return academic.Assignment{}, academic.ErrNotFound
}

func (repo *academicRepository) DeleteAssignment(_ context.Context, id string, _ ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.assignments[id]; !ok {
		return academic.ErrNotFound
	}
	delete(repo.db.assignments, id)
	return nil
}

func (repo *academicRepository) AssignmentExists(_ context.Context, staffID, subjectID string, _ ...core.DBExecutor) (bool, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, a := range repo.db.assignments {
		if a.StaffID == staffID && a.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *academicRepository) QueryStaffSubjects(_ context.Context, staffID string, _ ...core.DBExecutor) ([]academic.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	subjects := make([]academic.Subject, 0)
	for _, a := range repo.db.assignments {
		if a.StaffID != staffID {
			continue
		}
		if subj, ok := repo.db.subjects[a.SubjectID]; ok {
			subjects = append(subjects, *subj)
		}
	}
	sortSubjects(subjects)
	return subjects, nil
}

// sortSubjects orders subjects by class rank then name, map iteration order aside.
func sortSubjects(subjects []academic.Subject) {
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	academic.SortSubjects(subjects)
}
