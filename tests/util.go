package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	uname, pwd, role string,
	class academic.ClassRank,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Username:  uname,
		Role:      role,
		Class:     class,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateSubject(t *testing.T, repo academic.Repository, name string, class academic.ClassRank) academic.Subject {
	subj, err := repo.CreateSubject(context.Background(), academic.Subject{
		Name:      name,
		Class:     class,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createSubject() failed: %v", err)
	}
	return subj
}

func Assign(t *testing.T, repo academic.Repository, staff user.User, subj academic.Subject, createdAt ...time.Time) academic.Assignment {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	asg, err := repo.CreateAssignment(context.Background(), academic.Assignment{
		StaffID:   staff.ID,
		SubjectID: subj.ID,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("assign() failed: %v", err)
	}
	return asg
}

func SubmitProgress(t *testing.T, repo progress.Repository, staff user.User, subj academic.Subject, metrics progress.Metrics) progress.Submission {
	sub, err := repo.UpsertSubmission(context.Background(), progress.Submission{
		Metrics:   metrics.Normalized(),
		StaffID:   staff.ID,
		SubjectID: subj.ID,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("submitProgress() failed: %v", err)
	}
	return sub
}
