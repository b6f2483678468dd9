package command

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"honnef.co/go/euclid/construction"
)

// Kind classifies failures that happen before a command reaches the
// construction space.
type Kind string

const (
	KindBadRequest     Kind = "BAD_REQUEST"
	KindValidation     Kind = "VALIDATION_ERROR"
	KindUnknownCommand Kind = "UNKNOWN_COMMAND"
	KindInternal       Kind = "INTERNAL_ERROR"
)

// Error is a protocol-level failure. Construction failures are reported as
// *construction.Error instead.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps request field names to what is wrong with them.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unknownCommand(name string) *Error {
	return &Error{Kind: KindUnknownCommand, Message: fmt.Sprintf("Unknown command: %q", name)}
}

// ErrorBody is the JSON form of a failure.
type ErrorBody struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	ID      string            `json:"id,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	// Step is the index of the history step a replay stopped at.
	Step *int `json:"step,omitempty"`
}

// Describe converts any error returned by the dispatcher to its JSON form.
func Describe(err error) ErrorBody {
	var cerr *Error
	if errors.As(err, &cerr) {
		return ErrorBody{Kind: string(cerr.Kind), Message: cerr.Message, Fields: cerr.Fields}
	}

	body := ErrorBody{Kind: string(KindInternal), Message: err.Error()}
	var rerr *construction.ReplayError
	if errors.As(err, &rerr) {
		i := rerr.Index
		body.Step = &i
	}
	var gerr *construction.Error
	if errors.As(err, &gerr) {
		body.Kind = string(gerr.Kind)
		body.ID = gerr.ID
	}
	return body
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindValidation, Message: "invalid arguments", Err: err}
	}
	fields := make(map[string]string, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := formatFieldError(fe)
		fields[fe.Field()] = msg
		msgs = append(msgs, msg)
	}
	return &Error{Kind: KindValidation, Message: strings.Join(msgs, "; "), Fields: fields}
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
