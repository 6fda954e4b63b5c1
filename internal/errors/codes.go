// Package errors provides the structured error type shared by the kanban core,
// the application services and the transport adapters.
package errors

import "net/http"

// Code is a machine-readable error category.
type Code string

const (
	// CodeUnknown marks errors that did not originate from the domain.
	CodeUnknown Code = "UNKNOWN"

	// CodeValidation marks bad input: blank required fields, negative positions,
	// absent or unparseable identifiers.
	CodeValidation Code = "VALIDATION"

	// CodeNotFound marks a reference that does not resolve within its parent scope.
	CodeNotFound Code = "NOT_FOUND"

	// CodeIllegalState marks an invariant violation detected while persisting or
	// inserting (missing parent, duplicate identifier).
	CodeIllegalState Code = "ILLEGAL_STATE"
)

// HTTPStatus maps a code to the response status used by the REST adapter.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeIllegalState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Title is the short human-readable summary for a code.
func (c Code) Title() string {
	switch c {
	case CodeValidation:
		return "Bad Request"
	case CodeNotFound:
		return "Not Found"
	case CodeIllegalState:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}
