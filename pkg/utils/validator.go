package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("notblank", validateNotBlank)
}

// notblank rejects strings made only of whitespace. Nil pointers pass so
// that optional fields can be combined with omitempty.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var out []*ErrorResponse
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{Tag: "invalid", Msg: err.Error()}}
	}

	for _, fe := range verrs {
		element := ErrorResponse{Field: fe.Field(), Tag: fe.Tag()}

		switch fe.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "notblank":
			element.Msg = fmt.Sprintf("Field '%s' cannot be empty.", element.Field)
		case "min":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s characters.", element.Field, fe.Param())
		case "max":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s characters.", element.Field, fe.Param())
		case "email":
			element.Msg = "Please provide a valid email."
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, fe.Param())
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation on '%s'.", element.Field, element.Tag)
		}
		out = append(out, &element)
	}
	return out
}
