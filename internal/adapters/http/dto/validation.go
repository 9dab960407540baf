package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
const jsonTagParts = 2

// NonFieldErrors is the details key for errors not tied to one field.
const NonFieldErrors = "non_field_errors"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the singleton validator instance.
// It initializes the validator with custom validations on first call.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// Use JSON tag names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", jsonTagParts)[0]
			}

			return name
		})

		_ = validate.RegisterValidation("notblank", validateNotBlank)
	})

	return validate
}

// Validate checks struct tags and returns domain.FieldErrors keyed by the
// JSON field name.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validating request: %w", err)
	}

	return ValidationErrors(validationErrs)
}

// BindAndValidate decodes the JSON body into v and validates it. Decoding
// failures are reported as field errors where the field is known. An empty
// body decodes as an empty object.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return bindingErrors(err)
	}

	return Validate(v)
}

// BindQueryAndValidate binds query parameters and validates.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return domain.FieldErrors{NonFieldErrors: err.Error()}
	}

	return Validate(v)
}

// ValidationErrors converts validator failures to domain.FieldErrors.
func ValidationErrors(errs validator.ValidationErrors) domain.FieldErrors {
	fields := domain.FieldErrors{}
	for _, fe := range errs {
		fields.Add(fe.Field(), validationMessage(fe))
	}

	return fields
}

// bindingErrors maps JSON decoding failures to field errors. An oversized
// body is passed through so it maps to 413.
func bindingErrors(err error) error {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		maxErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}

		if field == authorField {
			return domain.FieldErrors{field: incorrectPKType(typeErr.Value)}
		}

		return domain.FieldErrors{field: "not a valid string"}

	case errors.As(err, &typeErr):
		return domain.FieldErrors{NonFieldErrors: "invalid data, expected an object but got " + typeErr.Value}

	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.FieldErrors{NonFieldErrors: "JSON parse error - " + err.Error()}

	case errors.As(err, &maxErr):
		return fmt.Errorf("reading request body: %w", maxErr)

	default:
		return domain.FieldErrors{NonFieldErrors: err.Error()}
	}
}

// validationMessages maps validation tags to message templates.
// Use {param} as placeholder for the validation parameter.
var validationMessages = map[string]string{
	"required": domain.MsgRequired,
	"notblank": domain.MsgBlank,
	"oneof":    "must be one of: {param}",
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, param, fe.Kind())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// minMaxMessage returns the appropriate message for min/max validation.
func minMaxMessage(tag, param string, kind reflect.Kind) string {
	suffix := ""
	if kind == reflect.String {
		suffix = " characters"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

// validateNotBlank rejects strings that are empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
