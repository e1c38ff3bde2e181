// Package validator decodes request payloads and checks their `validate` tags.
// Field names in messages follow the json tag.
package validator

import (
	"cleanbook/shared/calendar"
	"cleanbook/shared/failure"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func stringField(check func(string) bool) val.Func {
	return func(field val.FieldLevel) bool {
		value, ok := field.Field().Interface().(string)

		return ok && check(value)
	}
}

var custom = map[string]val.Func{
	"calendardate": stringField(calendar.IsValidDate),
	"notblank": stringField(func(value string) bool {
		return strings.TrimSpace(value) != ""
	}),
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// Validate decodes a JSON body into data and validates it. Every failure is a
// 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required")
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}
