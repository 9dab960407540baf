package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// tagRequiredForMySQL marks connection settings the mysql driver cannot
// start without.
const tagRequiredForMySQL = "required_for_mysql"

var validate = newValidator()

// newValidator reports fields by their koanf key, so an error names the
// same path an operator sets in YAML or APP_* variables.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	v.RegisterStructValidation(validateDatabase, DatabaseConfig{})

	return v
}

// validateDatabase requires the MySQL connection settings only when mysql
// is the selected driver.
func validateDatabase(sl validator.StructLevel) {
	db, ok := sl.Current().Interface().(DatabaseConfig)
	if !ok || db.Driver != DriverMySQL {
		return
	}

	required := []struct {
		key, field string
		value      any
		missing    bool
	}{
		{"mysql.host", "Host", db.MySQL.Host, db.MySQL.Host == ""},
		{"mysql.port", "Port", db.MySQL.Port, db.MySQL.Port == 0},
		{"mysql.name", "Name", db.MySQL.Name, db.MySQL.Name == ""},
		{"mysql.user", "User", db.MySQL.User, db.MySQL.User == ""},
	}

	for _, r := range required {
		if r.missing {
			sl.ReportError(r.value, r.key, r.field, tagRequiredForMySQL, "")
		}
	}
}

// Validate fails fast on the first load; the service does not start with
// an invalid config. All violations are reported together.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case tagRequiredForMySQL:
		return fmt.Sprintf("%s is required when driver is mysql", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, strings.ToLower(e.Param()))
	case "required_with":
		return fmt.Sprintf("%s is required when %s is set", field, toKey(e.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath drops the root struct name: "Config.server.port" becomes
// "server.port".
func formatFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

// toKey turns a Go field name parameter such as "PasswordHash" into its
// snake_case key.
func toKey(field string) string {
	var b strings.Builder

	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}

		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}
