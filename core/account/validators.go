package account

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/shulehub/shule/core"
)

var (
	genderTag  = "gender"
	genderText = "gender must be either MALE or FEMALE"

	roleTag  = "role"
	roleText = "invalid role"

	// password policy
	pwdMinLen = 6
	pwdMaxLen = 30

	pwdLenTag  = "pwdlen"
	pwdLenText = fmt.Sprintf("password must contain %d to %d characters", pwdMinLen, pwdMaxLen)

	pwdComplexityTag  = "pwdcplx"
	pwdComplexityText = "password must contain at least 1 uppercase character, 1 lowercase character and 1 digit"

	pwdAlphaNumTag  = "pwdalphanum"
	pwdAlphaNumText = "password must only contain letters and digits"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to the id or names"
)

func registerValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(genderTag, genderValidation)
	core.RegisterCustomTranslation(validate, translator, genderTag, genderText)

	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	validate.RegisterStructValidation(identityStructValidation, NewStudent{}, NewTeacher{}, NewAdmin{}, UpdateStudent{}, UpdateTeacher{})
	core.RegisterCustomTranslation(validate, translator, pwdLenTag, pwdLenText)
	core.RegisterCustomTranslation(validate, translator, pwdComplexityTag, pwdComplexityText)
	core.RegisterCustomTranslation(validate, translator, pwdAlphaNumTag, pwdAlphaNumText)
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}

func genderValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

func roleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	sort.Strings(Roles)
	if idx := sort.SearchStrings(Roles, role); idx < len(Roles) {
		return Roles[idx] == role
	}
	return false
}

// identityStructValidation applies the password policy to registration and
// update payloads. Updates only validate the password when one is provided.
func identityStructValidation(sl validator.StructLevel) {
	switch data := sl.Current().Interface().(type) {
	case NewStudent:
		validatePassword(data.Password, sl, data.ID, data.FirstName, data.LastName)
	case NewTeacher:
		validatePassword(data.Password, sl, data.ID, data.FirstName, data.LastName)
	case NewAdmin:
		validatePassword(data.Password, sl, data.ID, data.FirstName, data.LastName)
	case UpdateStudent:
		if data.Password != "" {
			validatePassword(data.Password, sl, data.FirstName, data.LastName)
		}
	case UpdateTeacher:
		if data.Password != "" {
			validatePassword(data.Password, sl, data.FirstName, data.LastName)
		}
	}
}

// validatePassword applies the password policy to provided password:
// - len: 6 to 30
// - letters and digits only
// - complexity: 1 upper, 1 lower, 1 digit
// - no similarity to id or names
func validatePassword(pwd string, sl validator.StructLevel, attrs ...string) {
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	pwdLen := len(pwd)
	if pwdLen < pwdMinLen || pwdLen > pwdMaxLen {
		reportErr(pwdLenTag)
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range pwd {
		if !(unicode.IsLetter(char) || unicode.IsDigit(char)) {
			reportErr(pwdAlphaNumTag)
			return
		}
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !(hasUpper && hasLower && hasDigit) {
		reportErr(pwdComplexityTag)
		return
	}

	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		ratio := difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(strings.ToLower(attr), "")).QuickRatio()
		if ratio >= pwdMaxSim {
			reportErr(pwdAttrSimTag)
			return
		}
	}
}
