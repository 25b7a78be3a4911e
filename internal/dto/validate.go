package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"homebuddy-auth/internal/domain"

	"github.com/go-playground/validator/v10"
)

// InviteCodePattern is the shape of every generated invite code.
var InviteCodePattern = regexp.MustCompile(`^[A-Z]{4}-[0-9]{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("invitecode", func(fl validator.FieldLevel) bool {
		return InviteCodePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks req against its struct tags. Failures come back as a
// validation *domain.Error naming every offending field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Validation("invalid request")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return domain.Validation(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "invitecode":
		return fmt.Sprintf("%s must look like ABCD-1234", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
