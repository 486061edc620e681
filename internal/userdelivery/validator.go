package userdelivery

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phoneRE = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// ValidPhone validates the phone binding tag.
var ValidPhone validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if phone, ok := fieldLevel.Field().Interface().(string); ok {
		return phoneRE.MatchString(phone)
	}

	return false
}
