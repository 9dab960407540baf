package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength bounds Author.Name and Author.Surname in characters.
const MaxNameLength = 100

// Field error messages shared by the domain and transport layers.
const (
	MsgRequired = "this field is required"
	MsgBlank    = "this field may not be blank"
)

// Author is a person quotes can be attributed to.
type Author struct {
	ID      int64
	Name    string
	Surname string
}

// Validate checks the field rules for an author.
func (a *Author) Validate() error {
	errs := FieldErrors{}

	checkName(errs, "name", a.Name)
	checkName(errs, "surname", a.Surname)

	return errs.Err()
}

func checkName(errs FieldErrors, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		errs.Add(field, MsgBlank)
	case utf8.RuneCountInString(value) > MaxNameLength:
		errs.Add(field, fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}
}
