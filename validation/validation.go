// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"TaskAPI/models"
)

// New returns a validator with the application's custom rules registered.
// Field names in errors use the JSON name of the field.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query", "mapstructure"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	// Optionals validate like pointers: unset is nil, so "omitempty" skips them.
	validate.RegisterCustomTypeFunc(optionalValue,
		models.Optional[string]{},
		models.Optional[bool]{},
	)
	if err := validate.RegisterValidation("logLevel", LogLevelValidator); err != nil {
		panic(fmt.Sprintf("register logLevel: %v", err))
	}
	return validate
}

func optionalValue(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case models.Optional[string]:
		if v.Set {
			return &v.Value
		}
		return (*string)(nil)
	case models.Optional[bool]:
		if v.Set {
			return &v.Value
		}
		return (*bool)(nil)
	}
	return nil
}

// LogLevelValidator is a validation function that checks if the field value names a logrus level.
// It returns true for values such as "debug" or "warn", and false otherwise.
func LogLevelValidator(fl validator.FieldLevel) bool {
	_, err := logrus.ParseLevel(fl.Field().String())
	return err == nil
}

// Describe renders a validation error as a short client-facing message.
// Errors that did not come from the validator are returned unchanged.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "logLevel":
		return fmt.Sprintf("%s must be a log level, got %q", fe.Field(), fe.Value())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
