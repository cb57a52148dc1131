package academic_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/user"
	inmemdb "github.com/campusdesk/portal/storage/database/inmem"
	testutil "github.com/campusdesk/portal/tests"
)

type testEnv struct {
	svc      *academic.Service
	repo     academic.Repository
	usrRepo  user.Repository
	usrSvc   *user.Service
	validate *validator.Validate
}

func setup() testEnv {
	validate, translator := core.NewValidator()
	academic.InitValidators(validate, translator)

	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo)
	repo := inmemdb.NewAcademicRepository(db)
	return testEnv{
		svc:      academic.NewService(repo, usrSvc),
		repo:     repo,
		usrRepo:  usrRepo,
		usrSvc:   usrSvc,
		validate: validate,
	}
}

func names(subjects []academic.Subject) []string {
	res := make([]string, 0, len(subjects))
	for _, s := range subjects {
		res = append(res, s.Name)
	}
	return res
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		in      string
		want    academic.ClassRank
		wantErr bool
	}{
		{in: "fe", want: academic.ClassFE},
		{in: " BE ", want: academic.ClassBE},
		{in: "me", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := academic.ParseClass(tt.in)
			if tt.wantErr {
				assert.Equal(t, academic.ErrUnknownClass, errors.Cause(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassRank(t *testing.T) {
	assert.Equal(t, 0, academic.ClassRank("").Rank())
	assert.Equal(t, 1, academic.ClassFE.Rank())
	assert.Equal(t, 4, academic.ClassBE.Rank())
	assert.Equal(t, "TE", academic.ClassTE.Label())
	assert.Equal(t, "SE (Second Year)", academic.ClassSE.LongLabel())
	assert.Len(t, academic.ClassOptions(), len(academic.Classes))
}

func TestNewSubject_Validate(t *testing.T) {
	env := setup()

	tests := []struct {
		name     string
		data     academic.NewSubject
		wantTags map[string]string
	}{
		{name: "required", data: academic.NewSubject{}, wantTags: map[string]string{"name": "required", "class": "required"}},
		{name: "blank name", data: academic.NewSubject{Name: "   ", Class: "fe"}, wantTags: map[string]string{"name": "required"}},
		{name: "invalid class", data: academic.NewSubject{Name: "Physics", Class: "xe"}, wantTags: map[string]string{"class": "classrank"}},
		{name: "valid", data: academic.NewSubject{Name: " Physics ", Class: " FE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(env.validate)
			if tt.wantTags == nil {
				assert.NoError(t, err)
				assert.Equal(t, "Physics", tt.data.Name)
				assert.Equal(t, academic.ClassFE, tt.data.Class)
				return
			}
			tags := make(map[string]string)
			var vErrs validator.ValidationErrors
			if assert.True(t, errors.As(err, &vErrs)) {
				for _, fe := range vErrs {
					tags[fe.Field()] = fe.Tag()
				}
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}
}

func TestService_Subjects(t *testing.T) {
	env := setup()
	ctx := context.Background()

	physics := testutil.CreateSubject(t, env.repo, "Physics", academic.ClassFE)
	testutil.CreateSubject(t, env.repo, "Compilers", academic.ClassTE)
	testutil.CreateSubject(t, env.repo, "Chemistry", academic.ClassFE)
	testutil.CreateSubject(t, env.repo, "Networks", academic.ClassBE)
	testutil.CreateSubject(t, env.repo, "Maths", academic.ClassSE)

	subjects, err := env.svc.QuerySubjects(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Chemistry", "Physics", "Maths", "Compilers", "Networks"}, names(subjects))

	subjects, err = env.svc.QuerySubjects(ctx, academic.ClassFE)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Chemistry", "Physics"}, names(subjects))

	t.Run("update", func(t *testing.T) {
		data := academic.UpdateSubject{Class: "be"}
		if !assert.NoError(t, data.Validate(physics, env.validate)) {
			return
		}
		assert.Equal(t, "Physics", data.Name)
		subj, err := env.svc.UpdateSubject(ctx, physics.ID, data)
		assert.NoError(t, err)
		assert.Equal(t, academic.ClassBE, subj.Class)

		_, err = env.svc.UpdateSubject(ctx, "missing", data)
		assert.Equal(t, academic.ErrNotFound, errors.Cause(err))
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, env.svc.DeleteSubject(ctx, physics.ID))
		_, err := env.svc.GetSubject(ctx, physics.ID)
		assert.Equal(t, academic.ErrNotFound, errors.Cause(err))
		assert.Equal(t, academic.ErrNotFound, errors.Cause(env.svc.DeleteSubject(ctx, physics.ID)))
	})
}

func TestService_Assign(t *testing.T) {
	env := setup()
	ctx := context.Background()

	staff := testutil.CreateUser(t, env.usrRepo, "ravi", "", user.RoleStaff, "", true)
	student := testutil.CreateUser(t, env.usrRepo, "kiran", "", user.RoleStudent, academic.ClassFE, true)
	physics := testutil.CreateSubject(t, env.repo, "Physics", academic.ClassFE)
	taken := testutil.CreateSubject(t, env.repo, "Maths", academic.ClassSE)
	testutil.Assign(t, env.repo, staff, taken)

	tests := []struct {
		name      string
		data      academic.NewAssignment
		wantErr   error
		wantField string
	}{
		{name: "not staff", data: academic.NewAssignment{StaffID: student.ID, SubjectID: physics.ID}, wantErr: academic.ErrNotStaff, wantField: "staff_id"},
		{name: "unknown staff", data: academic.NewAssignment{StaffID: "missing", SubjectID: physics.ID}, wantErr: academic.ErrNotStaff, wantField: "staff_id"},
		{name: "unknown subject", data: academic.NewAssignment{StaffID: staff.ID, SubjectID: "missing"}, wantErr: academic.ErrSubjectNotFound, wantField: "subject_id"},
		{name: "duplicate", data: academic.NewAssignment{StaffID: staff.ID, SubjectID: taken.ID}, wantErr: academic.ErrAssignmentExists, wantField: "subject_id"},
		{name: "valid", data: academic.NewAssignment{StaffID: staff.ID, SubjectID: physics.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asg, err := env.svc.Assign(ctx, tt.data)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.NotEmpty(t, asg.ID)
				assert.Equal(t, staff.ID, asg.StaffID)
				return
			}
			var vErr *core.ValidationError
			if assert.True(t, errors.As(err, &vErr)) {
				assert.Equal(t, tt.wantErr, vErr.Err)
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
			}
		})
	}

	ok, err := env.svc.IsAssigned(ctx, staff.ID, physics.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.svc.IsAssigned(ctx, student.ID, physics.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Assignments(t *testing.T) {
	env := setup()
	ctx := context.Background()
	now := time.Now()

	ravi := testutil.CreateUser(t, env.usrRepo, "ravi", "", user.RoleStaff, "", true)
	meera := testutil.CreateUser(t, env.usrRepo, "meera", "", user.RoleStaff, "", true)
	physics := testutil.CreateSubject(t, env.repo, "Physics", academic.ClassFE)
	networks := testutil.CreateSubject(t, env.repo, "Networks", academic.ClassBE)
	maths := testutil.CreateSubject(t, env.repo, "Maths", academic.ClassSE)

	first := testutil.Assign(t, env.repo, ravi, networks, now)
	testutil.Assign(t, env.repo, ravi, physics, now.Add(time.Minute))
	testutil.Assign(t, env.repo, meera, maths, now.Add(2*time.Minute))

	details, err := env.svc.QueryAssignments(ctx)
	if assert.NoError(t, err) && assert.Len(t, details, 3) {
		assert.Equal(t, "meera", details[0].StaffUsername)
		assert.Equal(t, "Maths", details[0].SubjectName)
		assert.Equal(t, academic.ClassSE, details[0].SubjectClass)
		assert.Equal(t, first.ID, details[2].ID)
	}

	subjects, err := env.svc.StaffSubjects(ctx, ravi.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Physics", "Networks"}, names(subjects))

	t.Run("unassign", func(t *testing.T) {
		assert.NoError(t, env.svc.Unassign(ctx, first.ID))
		assert.Equal(t, academic.ErrNotFound, errors.Cause(env.svc.Unassign(ctx, first.ID)))

		subjects, err := env.svc.StaffSubjects(ctx, ravi.ID)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Physics"}, names(subjects))
	})

	t.Run("deleting a subject drops its assignments", func(t *testing.T) {
		assert.NoError(t, env.svc.DeleteSubject(ctx, maths.ID))
		ok, err := env.svc.IsAssigned(ctx, meera.ID, maths.ID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("deleting a staff user drops their assignments", func(t *testing.T) {
		assert.NoError(t, env.usrSvc.Delete(ctx, ravi.ID))
		details, err := env.svc.QueryAssignments(ctx)
		assert.NoError(t, err)
		assert.Empty(t, details)
	})
}

func TestSortSubjects(t *testing.T) {
	subjects := []academic.Subject{
		{Name: "b", Class: academic.ClassSE},
		{Name: "a", Class: academic.ClassSE},
		{Name: "Z", Class: academic.ClassFE},
		{Name: "orphan"},
		{Name: "B", Class: academic.ClassSE},
	}
	academic.SortSubjects(subjects)
	assert.Equal(t, []string{"orphan", "Z", "B", "a", "b"}, names(subjects))
}
