package main

import (
	"context"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/user"
)

func academicClass(s string) academic.ClassRank {
	return academic.ClassRank(core.CleanString(s, true /* lower */))
}

// addUser validates nu against the user rules (password policy included) and creates it.
func (cli *commandLine) addUser(nu user.NewUser) (user.User, error) {
	if err := nu.Validate(cli.validate, cli.usrSvc); err != nil {
		return user.User{}, cli.validationError(err)
	}
	return cli.usrSvc.Create(context.Background(), nu)
}
