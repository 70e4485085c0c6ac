package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/go-playground/validator/v10"
)

// Validator lets a DTO add checks that struct tags cannot express. Its
// violations are reported together with the tag violations.
type Validator interface {
	Validate() []internal.ValidationError
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
}

// fieldName reports a field by the name the client used for it.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query", "path"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates v and returns nil, or an INPUT_VALIDATE_FAIL AppError
// listing every violated constraint.
func Struct(v any) error {
	var details []internal.ValidationError

	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return internal.NewInternalError(err)
		}
		for _, fe := range fieldErrs {
			details = append(details, internal.ValidationError{
				Field:   fe.Field(),
				Message: message(fe),
				Code:    strings.ToUpper(fe.Tag()),
			})
		}
	}

	if custom, ok := v.(Validator); ok {
		details = append(details, custom.Validate()...)
	}

	if len(details) == 0 {
		return nil
	}
	return internal.NewValidationFailedError(details...)
}

// NotBlank reports a value that has characters but only whitespace. Empty
// values are left to the required tag.
func NotBlank(field, value string) []internal.ValidationError {
	if value == "" || strings.TrimSpace(value) != "" {
		return nil
	}
	return []internal.ValidationError{{
		Field:   field,
		Message: fmt.Sprintf("%s must not be blank", field),
		Code:    "NOTBLANK",
	}}
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}
