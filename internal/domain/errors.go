package domain

import "fmt"

// ErrorKind classifies a domain failure.
type ErrorKind string

const (
	// KindInvalidArgument marks an argument outside its accepted range.
	KindInvalidArgument ErrorKind = "INVALID_ARGUMENT"
	// KindNullArgument marks a required argument that was not supplied.
	KindNullArgument ErrorKind = "NULL_ARGUMENT"
	// KindRuleViolation marks a broken business rule.
	KindRuleViolation ErrorKind = "RULE_VIOLATION"
	// KindForbidden marks an actor lacking the required role.
	KindForbidden ErrorKind = "FORBIDDEN"
	// KindNotFound marks a missing child entity the operation requires.
	KindNotFound ErrorKind = "NOT_FOUND"
)

// Error is the error type returned by every entity method.
type Error struct {
	Kind    ErrorKind
	Message string
	// Param names the offending argument, when there is one.
	Param string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (parameter '%s')", e.Message, e.Param)
	}
	return e.Message
}

// Is reports whether target has the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks by kind.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrNullArgument    = &Error{Kind: KindNullArgument, Message: "argument cannot be null"}
	ErrRuleViolation   = &Error{Kind: KindRuleViolation, Message: "business rule violation"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "permission denied"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
)

func invalidArgument(param, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message, Param: param}
}

func nullArgument(param string) *Error {
	return &Error{Kind: KindNullArgument, Message: "Value cannot be null.", Param: param}
}

func ruleViolation(format string, args ...any) *Error {
	return &Error{Kind: KindRuleViolation, Message: fmt.Sprintf(format, args...)}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// requireID rejects a zero identifier. Identifiers are unsigned, so zero is
// the only non-positive value.
func requireID(param string, id uint64) error {
	if id == 0 {
		return invalidArgument(param, "Id must be a positive integer.")
	}
	return nil
}
