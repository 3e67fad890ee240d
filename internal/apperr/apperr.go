// Package apperr defines the structured error contract shared by the
// GraphQL layer and the business services. Every user-facing failure
// carries a localized message and a machine-readable code surfaced as
// extensions.code in the GraphQL response.
package apperr

const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
)

type Error struct {
	Message string
	Code    string
	// Errors holds the individual validation violations, when any.
	Errors []string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements gqlerrors.ExtendedError so graphql-go renders
// the code (and violation list) under errors[].extensions.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Errors) > 0 {
		ext["errors"] = e.Errors
	}
	return ext
}

func BadUserInput(message string, violations ...string) *Error {
	return &Error{Message: message, Code: CodeBadUserInput, Errors: violations}
}

func Unauthenticated(message string) *Error {
	return &Error{Message: message, Code: CodeUnauthenticated}
}

func Forbidden(message string) *Error {
	return &Error{Message: message, Code: CodeForbidden}
}

func NotFound(message string) *Error {
	return &Error{Message: message, Code: CodeNotFound}
}
