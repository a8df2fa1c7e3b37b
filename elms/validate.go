package elms

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	zipPattern     = regexp.MustCompile(`^[1-9][0-9]{4}$`)
	fieldValidator = validator.New()
)

func checkCountry(country string) bool {
	return country == CountryCZ || country == CountrySK
}

// checkZip treats empty input as "not provided yet".
func checkZip(zip string) bool {
	if zip == "" {
		return true
	}
	return zipPattern.MatchString(zip)
}

// checkEmail treats empty input as "not provided yet".
func checkEmail(email string) bool {
	if email == "" {
		return true
	}
	return fieldValidator.Var(email, "email") == nil
}
