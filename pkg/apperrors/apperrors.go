// Package apperrors defines the error taxonomy shared by the repository,
// coordinator and mutation layers.
//
// Errors are go-errors values: the Category groups them (not_found,
// validation, external...), TextCode holds the Code below and Code holds the
// HTTP status when there is one. Callers branch with errors.Is against the
// exported sentinels without caring about message text:
//
//	if errors.Is(err, apperrors.ErrNotFound) {
//		// surface a retrieval failure
//	}
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Code identifies an error kind independent of the transport.
type Code string

const (
	CodeValidation       Code = "validation_failed"
	CodeNotFound         Code = "not_found"
	CodeTransport        Code = "transport_error"
	CodeAlreadyPending   Code = "already_pending"
	CodeConfirmationOpen Code = "confirmation_open"
	CodeFormClosed       Code = "form_closed"
)

var categories = map[Code]goerrors.Category{
	CodeValidation:       goerrors.CategoryValidation,
	CodeNotFound:         goerrors.CategoryNotFound,
	CodeTransport:        goerrors.CategoryExternal,
	CodeAlreadyPending:   goerrors.CategoryConflict,
	CodeConfirmationOpen: goerrors.CategoryConflict,
	CodeFormClosed:       goerrors.CategoryOperation,
}

// Category returns the go-errors category the code belongs to.
func (c Code) Category() goerrors.Category {
	if cat, ok := categories[c]; ok {
		return cat
	}
	return goerrors.CategoryInternal
}

// Sentinels for errors.Is matching. Matching is by Code only.
var (
	ErrValidation       = sentinel(CodeValidation)
	ErrNotFound         = sentinel(CodeNotFound)
	ErrTransport        = sentinel(CodeTransport)
	ErrAlreadyPending   = sentinel(CodeAlreadyPending)
	ErrConfirmationOpen = sentinel(CodeConfirmationOpen)
	ErrFormClosed       = sentinel(CodeFormClosed)
)

type goError = goerrors.Error

// Error is a go-errors error tagged with a Code.
type Error struct {
	*goError
}

func sentinel(code Code) *Error {
	return &Error{goError: &goerrors.Error{Category: code.Category(), TextCode: string(code)}}
}

func build(code Code, ge *goerrors.Error) *Error {
	ge.Category = code.Category()
	return &Error{goError: ge.WithTextCode(string(code))}
}

// Kind returns the Code carried by e.
func (e *Error) Kind() Code {
	return Code(e.TextCode)
}

// Error renders the message, the sorted field errors and the cause.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.TextCode
	}
	if len(e.ValidationErrors) > 0 {
		msg = msg + ": " + fieldsFrom(e.ValidationErrors).String()
	}
	if e.Source != nil {
		return msg + ": " + e.Source.Error()
	}
	return msg
}

// Is reports whether target is an *Error with the same code. Only this node
// is compared; errors.Is walks the rest of the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.goError == nil || e.goError == nil {
		return false
	}
	return e.TextCode == t.TextCode
}

// FieldErrors maps a field name (its JSON name) to a user-facing message.
type FieldErrors map[string]string

// String renders the field errors sorted by field name.
func (f FieldErrors) String() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}
	return strings.Join(parts, "; ")
}

func fieldsFrom(verrs goerrors.ValidationErrors) FieldErrors {
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field] = fe.Message
	}
	return out
}

// New creates an error with the given code and message.
func New(code Code, msg string) error {
	return build(code, goerrors.New(msg))
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return build(code, goerrors.New(fmt.Sprintf(format, args...)))
}

// NotFound reports that the server does not know the resource. detail, when
// given, is the server's own explanation.
func NotFound(resource string, id any, detail ...string) error {
	msg := fmt.Sprintf("%s not found: %v", resource, id)
	if len(detail) > 0 && detail[0] != "" {
		msg = fmt.Sprintf("%s (%s)", msg, detail[0])
	}
	return build(CodeNotFound, goerrors.New(msg).WithCode(http.StatusNotFound))
}

// Transport wraps a network or HTTP failure. status is zero when no
// response was received.
func Transport(status int, msg string, cause error) error {
	ge := goerrors.New(msg)
	if cause != nil {
		ge = goerrors.Wrap(cause, CodeTransport.Category(), msg)
	}
	return build(CodeTransport, ge.WithCode(status))
}

// Validation builds a field-scoped validation error. It returns nil when
// fields is empty.
func Validation(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return build(CodeValidation, goerrors.NewValidationFromMap("validation failed", fields))
}

// FromOzzo converts an ozzo-validation result into a validation error keyed
// by field, or nil.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}
	return build(CodeValidation, goerrors.FromOzzoValidation(err, "validation failed"))
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind() == code
	}
	return false
}

// FieldsOf returns the field errors carried by a validation error.
func FieldsOf(err error) FieldErrors {
	var e *Error
	if !errors.As(err, &e) || e.Kind() != CodeValidation || len(e.ValidationErrors) == 0 {
		return nil
	}
	return fieldsFrom(e.ValidationErrors)
}

// StatusOf returns the HTTP status attached to err, or zero.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// MessageOf returns the message of the first *Error in err's chain, or
// err.Error() for foreign errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
