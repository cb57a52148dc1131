package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

var (
	AllRoles = []string{RoleAdmin, RoleStaff, RoleStudent}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Staff", Value: RoleStaff},
		{Name: "Admin", Value: RoleAdmin},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           string             `json:"id" db:"id"`
	Username     string             `json:"username" db:"username"`
	Role         string             `json:"role" db:"role"`
	Class        academic.ClassRank `json:"class,omitempty" db:"class"` // students only
	IsActive     bool               `json:"is_active" db:"is_active"`
	PasswordHash []byte             `json:"-" db:"password_hash"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    null.Time          `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsStaff() bool   { return u.Role == RoleStaff }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string             `json:"username" validate:"required,max=50,username"`
	Password string             `json:"password" validate:"required"`
	Role     string             `json:"role" validate:"required,userrole"`
	Class    academic.ClassRank `json:"class" validate:"omitempty,classrank"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.Class = academic.ClassRank(core.CleanString(string(nu.Class), true /* lower */))
	if nu.Role != RoleStudent {
		nu.Class = ""
	}

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Username)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Blank fields keep their current value.
type UpdateUser struct {
	Username string             `json:"username" validate:"omitempty,max=50,username"`
	Class    academic.ClassRank `json:"class" validate:"omitempty,classrank"`
	IsActive *bool              `json:"is_active"`
	Password string             `json:"password"`

	role string // the role of the updated User, for struct validation
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc *Service) error {
	uu.role = origUsr.Role

	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if cls := academic.ClassRank(core.CleanString(string(uu.Class), true /* lower */)); cls != "" && origUsr.IsStudent() {
		uu.Class = cls
	} else {
		uu.Class = origUsr.Class
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.checkUniqueness(uu.Username, origUsr.ID)
}

// GetFilter selects a single User by ID or Username.
type GetFilter struct {
	ID       string
	Username string
}

type QueryFilter struct {
	Search   string
	Roles    []string
	Class    academic.ClassRank
	IsActive *bool
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.Class == "" && qf.IsActive == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Class = academic.ClassRank(core.CleanString(string(qf.Class), true /* lower */))
	roles := make([]string, 0, len(qf.Roles))
	for _, r := range qf.Roles {
		if r = core.CleanString(r, true /* lower */); r != "" {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		roles = nil
	}
	qf.Roles = roles
}
