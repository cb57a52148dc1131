package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/campusdesk/portal/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *sql.DB
	usrSvc     *user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  adduser -username USERNAME -admin|-staff|-student [-class fe|se|te|be] - create a user")
	fmt.Println("  resetpassword -username USERNAME - reset user's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Create an admin.")
	addUserStaff := addUserCmd.Bool("staff", false, "Create a staff member.")
	addUserStudent := addUserCmd.Bool("student", false, "Create a student (requires -class).")
	addUserClass := addUserCmd.String("class", "", "The student's class: fe, se, te or be.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		role := pickRole(*addUserAdmin, *addUserStaff, *addUserStudent)
		if *addUserUname == "" || role == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		usr, err := cli.addUser(user.NewUser{
			Username: *addUserUname,
			Password: pwd,
			Role:     role,
			Class:    academicClass(*addUserClass),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s %q created.\n", usr.Role, usr.Username)
		return nil

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)

	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// pickRole returns the single selected role, or "" when none or several are selected.
func pickRole(admin, staff, student bool) string {
	var roles []string
	if admin {
		roles = append(roles, user.RoleAdmin)
	}
	if staff {
		roles = append(roles, user.RoleStaff)
	}
	if student {
		roles = append(roles, user.RoleStudent)
	}
	if len(roles) != 1 {
		return ""
	}
	return roles[0]
}

// validationError flattens validator errors into a single readable error.
func (cli *commandLine) validationError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return fmt.Errorf("%s: %s", fe.Field(), fe.Translate(cli.translator))
}
