package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// Empty reports whether no problem was recorded.
func (s *StructuredError) Empty() bool {
	return len(s.Errors) == 0
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError  = NewSimple(404, "Resource not found")
	InvalidIDError = NewSimple(400, "The provided ID is invalid, IDs are positive integers")

	/*
	 * Used for authentications
	 */
	UnauthorizedError     = NewSimple(401, "Unauthorized")
	InvalidAuthTokenError = NewSimple(401, "Invalid or expired authentication token")

	/*
	 * Requests and quotations
	 */
	RequestNotFoundError        = NewSimple(404, "Request not found")
	LeadNotFoundError           = NewSimple(404, "Lead not found")
	MaterialNotFoundError       = NewSimple(404, "Material not found")
	ClientNotFoundError         = NewSimple(400, "Client does not exist")
	MissingPrimarySupplierError = NewSimple(400, "All materials must have at least Supplier 1 with a valid price")
	RequestBusyError            = NewSimple(409, "Request is being modified by someone else, try again")
	RequestNumberConflictError  = NewSimple(409, "Could not allocate a request number, try again")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fieldName(fe)

		switch fe.Tag() {
		case "required", "required_without":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "gt", "gte":
			problems[field] = append(problems[field], "Value is too small, must be "+fe.Tag()+" "+fe.Param())
		case "lte":
			problems[field] = append(problems[field], "Value is too big, max: "+fe.Param())
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "nodupes":
			problems[field] = append(problems[field], "Value must not contain duplicates")
		case "leadstage":
			problems[field] = append(problems[field], "Value must be a valid lead stage")
		case "district":
			problems[field] = append(problems[field], "Value must be a known district")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

// fieldName renders nested fields as lines[0].quantity.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return strings.ToLower(ns[i+1:])
	}
	return strings.ToLower(fe.Field())
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}

func NewMissingPermissionError(perm string) *APIError {
	return NewSimple(http.StatusForbidden, "Missing permission: %s", perm)
}
