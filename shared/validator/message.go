package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

type describe func(field, param string, kind reflect.Kind) string

func sized(kind reflect.Kind) bool {
	return kind == reflect.String || kind == reflect.Slice || kind == reflect.Map
}

func bound(word string) describe {
	return func(field, param string, kind reflect.Kind) string {
		if kind == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters", field, word, param)
		}

		if sized(kind) {
			return fmt.Sprintf("%s must contain %s %s items", field, word, param)
		}

		if word == "at most" {
			return fmt.Sprintf("%s must be less than or equal to %s", field, param)
		}

		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	}
}

func fixed(format string) describe {
	return func(field, param string, _ reflect.Kind) string {
		if strings.Count(format, "%s") == 2 { //nolint:mnd
			return fmt.Sprintf(format, field, param)
		}

		return fmt.Sprintf(format, field)
	}
}

var messages = map[string]describe{
	"required":     fixed("%s is required"),
	"notblank":     fixed("%s must not be blank"),
	"email":        fixed("%s must be a valid email address"),
	"uuid":         fixed("%s must be a valid UUID"),
	"calendardate": fixed("%s must be a valid date in YYYY-MM-DD format"),
	"oneof":        fixed("%s must be one of %s"),
	"nefield":      fixed("%s must differ from %s"),
	"gte":          fixed("%s must be greater than or equal to %s"),
	"lte":          fixed("%s must be less than or equal to %s"),
	"min":          bound("at least"),
	"max":          bound("at most"),
}

// message reports the first validation failure that has a readable form.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		text, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		field := fieldErr.Field()
		if field == "" {
			field = "value"
		}

		return text(field, fieldErr.Param(), fieldErr.Kind())
	}

	return fieldErrors.Error()
}
