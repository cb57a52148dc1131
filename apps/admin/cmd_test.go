package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/user"
	inmemdb "github.com/campusdesk/portal/storage/database/inmem"
	testutil "github.com/campusdesk/portal/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()
	db := inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)

	validate, translator := core.NewValidator()
	academic.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	return &commandLine{
		usrSvc:     user.NewService(usrRepo),
		validate:   validate,
		translator: translator,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, errors.Cause(err))
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

type pwdExtra struct {
	pwd string
}

func mockPassword(extra interface{}) {
	readPasswordFunc = func(fd int) ([]byte, error) {
		if e, ok := extra.(pwdExtra); ok {
			return []byte(e.pwd), nil
		}
		return nil, nil
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	origRun := gooseRunFunc
	defer func() { gooseRunFunc = origRun }()

	var gotCommand string
	gooseRunFunc = func(db *sql.DB, command string, args ...string) error {
		gotCommand = command
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "timetable", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			gotCommand = ""
			tt.check(t, cli.run(args))
			if len(tt.args) > 1 {
				assert.Equal(t, tt.args[1], gotCommand)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	testutil.CreateUser(t, usrRepo, "taken", "", user.RoleStaff, "", true)

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no role", args: []string{"adduser", "-username", "asha"}, extra: pwdExtra{pwd: "correct horse"}, wantErr: errHelp},
		{name: "several roles", args: []string{"adduser", "-username", "asha", "-admin", "-staff"}, extra: pwdExtra{pwd: "correct horse"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "asha", "-admin"}, wantErr: errHelp},
		{name: "short password", args: []string{"adduser", "-username", "asha", "-admin"}, extra: pwdExtra{pwd: "short"}, wantErrStr: "password: password must contain at least 8 characters"},
		{name: "numeric password", args: []string{"adduser", "-username", "asha", "-admin"}, extra: pwdExtra{pwd: "12345678"}, wantErrStr: "password: password cannot be entirely numeric"},
		{name: "student without class", args: []string{"adduser", "-username", "sid", "-student"}, extra: pwdExtra{pwd: "Quiet.River.42"}, wantErrStr: "class: class is required for students"},
		{name: "username taken", args: []string{"adduser", "-username", "Taken", "-staff"}, extra: pwdExtra{pwd: "Quiet.River.42"}, wantErr: user.ErrUsernameExists},
		{name: "admin", args: []string{"adduser", "-username", " Asha ", "-admin"}, extra: pwdExtra{pwd: "Quiet.River.42"}},
		{name: "student", args: []string{"adduser", "-username", "sid", "-student", "-class", "TE"}, extra: pwdExtra{pwd: "Quiet.River.42"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		mockPassword(tt.extra)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr == user.ErrUsernameExists {
				var verr *core.ValidationError
				require.True(t, errors.As(err, &verr), "got %v", err)
				assert.Equal(t, user.ErrUsernameExists, verr.Err)
				return
			}
			tt.check(t, err)
		})
	}

	admin, err := cli.usrSvc.GetByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.NoError(t, admin.CheckPassword("Quiet.River.42"))

	student, err := cli.usrSvc.GetByUsername(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, academic.ClassTE, student.Class)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "kavya", "Old.Password.1", user.RoleStaff, "", true)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "kavya"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: pwdExtra{pwd: "Quiet.River.42"}, wantErr: user.ErrNotFound},
		{name: "weak password", args: []string{"resetpassword", "-username", "kavya"}, extra: pwdExtra{pwd: "kavya123"}, wantErrStr: "password: password cannot be similar to the username"},
		{name: "reset", args: []string{"resetpassword", "-username", "KAVYA"}, extra: pwdExtra{pwd: "Quiet.River.42"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		mockPassword(tt.extra)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	refreshed, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
	require.NoError(t, err)
	assert.False(t, bytes.Equal(refreshed.PasswordHash, usr.PasswordHash), "password not updated")
	assert.NoError(t, refreshed.CheckPassword("Quiet.River.42"))
}
