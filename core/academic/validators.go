package academic

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campusdesk/portal/core"
)

var (
	classRankTag  = "classrank"
	classRankText = "invalid class, must be one of fe, se, te or be"
)

// InitValidators registers the academic validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(classRankTag, classRankValidation)
	core.RegisterCustomTranslation(validate, translator, classRankTag, classRankText)
}

// classRankValidation checks that the field is a known class code.
func classRankValidation(fl validator.FieldLevel) bool {
	return ClassRank(fl.Field().String()).IsValid()
}
