package inmemdb

import (
	"context"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetSubmission(_ context.Context, staffID, subjectID string, _ ...core.DBExecutor) (progress.Submission, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if sub := repo.db.findProgress(progressKey{staffID: staffID, subjectID: subjectID}); sub != nil {
		return *sub, nil
	}
	return progress.Submission{}, progress.ErrNotFound
}

func (repo *progressRepository) UpsertSubmission(_ context.Context, sub progress.Submission, _ ...core.DBExecutor) (progress.Submission, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if existing := repo.db.findProgress(progressKey{staffID: sub.StaffID, subjectID: sub.SubjectID}); existing != nil {
		*existing = sub
		return sub, nil
	}
	s := sub
	repo.db.progress = append(repo.db.progress, &s)
	return sub, nil
}

func (repo *progressRepository) QueryRecords(_ context.Context, _ ...core.DBExecutor) ([]progress.Record, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	records := make([]progress.Record, 0, len(repo.db.progress))
	for _, sub := range repo.db.progress {
		rec := progress.Record{Submission: *sub}
		if subj, ok := repo.db.subjects[sub.SubjectID]; ok {
			s := *subj
			rec.Subject = &s
		}
		if usr, ok := repo.db.users[sub.StaffID]; ok {
			rec.Submitter = &progress.Faculty{ID: usr.ID, Username: usr.Username}
		}
		records = append(records, rec)
	}
	return records, nil
}
