package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return lowerFirst(fld.Name)
		}
		return name
	})
	return v
}

// Problem describes one failed rule.
type Problem struct {
	Field string
	Rule  string
	Param string
}

func (p Problem) String() string {
	switch p.Rule {
	case "required", "required_unless", "required_if":
		return fmt.Sprintf("%s is required", p.Field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", p.Field, p.Param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", p.Field, p.Param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", p.Field, p.Param)
	case "gtfield":
		return fmt.Sprintf("%s must be later than %s", p.Field, lowerFirst(p.Param))
	case "eqfield":
		return fmt.Sprintf("%s must match %s", p.Field, lowerFirst(p.Param))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", p.Field)
	case "dive":
		return fmt.Sprintf("%s contains an invalid value", p.Field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", p.Field, p.Rule)
	}
}

// Error is returned before any request is sent.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.String())
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Has reports whether the named field failed any rule.
func (e *Error) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

// New builds a single-problem error for checks that do not fit struct tags.
func New(field, rule, param string) *Error {
	return &Error{Problems: []Problem{{Field: field, Rule: rule, Param: param}}}
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	out := &Error{Problems: make([]Problem, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Problems = append(out.Problems, Problem{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
