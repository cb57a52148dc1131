package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/campusdesk/portal/core"
)

var (
	userRoleTag  = "userrole"
	userRoleText = "invalid role, must be one of admin, staff or student"

	usernameTag   = "username"
	usernameText  = "only letters, digits, dots, dashes and underscores are allowed"
	usernameRegex = regexp.MustCompile(`^[a-z0-9._-]+$`)

	classRequiredTag  = "classrequired"
	classRequiredText = "class is required for students"

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to the username"
)

// InitValidators registers the user validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(userRoleTag, userRoleValidation)
	core.RegisterCustomTranslation(validate, translator, userRoleTag, userRoleText)

	_ = validate.RegisterValidation(usernameTag, usernameValidation)
	core.RegisterCustomTranslation(validate, translator, usernameTag, usernameText)

	validate.RegisterStructValidation(userStructValidation, NewUser{}, UpdateUser{})
	core.RegisterCustomTranslation(validate, translator, classRequiredTag, classRequiredText)
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(validate, translator, pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(validate, translator, pwdNotAllNumTag, pwdNotAllNumText)
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}

// Custom Validators

// userRoleValidation checks that the role is one of AllRoles
func userRoleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

func usernameValidation(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// userStructValidation does struct level validation on NewUser and UpdateUser structs.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		if usr.Role == RoleStudent && usr.Class == "" {
			sl.ReportError(usr.Class, "class", "Class", classRequiredTag, "")
		}
		if usr.Password != "" {
			validatePassword(usr.Password, usr.Username, sl)
		}
	case UpdateUser:
		if usr.role == RoleStudent && usr.Class == "" {
			sl.ReportError(usr.Class, "class", "Class", classRequiredTag, "")
		}
		if usr.Password != "" {
			validatePassword(usr.Password, usr.Username, sl)
		}
	}
}

// validatePassword applies the password policy to provided password:
// - minLen: 8
// - no whitespace
// - no all numeric
// - no username similarity
func validatePassword(pwd, uname string, sl validator.StructLevel) {
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	pwdLen := len([]rune(pwd))
	if pwdLen < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}

	var digitCount int
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == pwdLen {
		reportErr(pwdNotAllNumTag)
		return
	}

	if PasswordSimilarity(pwd, uname) >= pwdMaxSim {
		reportErr(pwdAttrSimTag)
	}
}

// PasswordSimilarity is the case-insensitive similarity ratio of a password to a user attribute.
func PasswordSimilarity(pwd, attr string) float64 {
	if attr == "" {
		return 0
	}
	return difflib.NewMatcher(
		strings.Split(strings.ToLower(pwd), ""),
		strings.Split(strings.ToLower(attr), ""),
	).Ratio()
}
