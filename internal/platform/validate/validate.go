package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct checks the struct-tag rules on an input and returns a single
// display-ready error, matching how slice operations surface failures.
func Struct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return err
	}
	return fmt.Errorf("%s", message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gtefield":
		return field + " must not be before " + strings.ToLower(fe.Param()[:1]) + fe.Param()[1:]
	case "gte":
		return field + " must be at least " + fe.Param()
	default:
		return field + " is invalid"
	}
}
