package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for request validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInvalidInput is used when a document fails its field rules
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeLinkedOrganizationNotFound is used when an onboarding points at a missing organization
	ErrCodeLinkedOrganizationNotFound = "ERR_LINKED_ORGANIZATION_NOT_FOUND"
	// ErrCodeReceivableParentNotFound is used when the company has no receivable group account
	ErrCodeReceivableParentNotFound = "ERR_RECEIVABLE_PARENT_NOT_FOUND"
	// ErrCodeNoActiveCompany is used when no company is configured for the ledger
	ErrCodeNoActiveCompany = "ERR_NO_ACTIVE_COMPANY"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:               http.StatusUnprocessableEntity,
	ErrCodeInvalidInput:               http.StatusUnprocessableEntity,
	ErrCodeLinkedOrganizationNotFound: http.StatusUnprocessableEntity,
	ErrCodeReceivableParentNotFound:   http.StatusUnprocessableEntity,
	ErrCodeNoActiveCompany:            http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Field rule codes (ERR_INVALID_*) not listed in the map are 422;
// anything else unknown is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "ERR_INVALID_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                     ErrCodeNotFound,
	"ALREADY_EXISTS":                ErrCodeAlreadyExists,
	"INVALID_INPUT":                 ErrCodeInvalidInput,
	"INVALID_STATE":                 ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":          ErrCodeConcurrencyConflict,
	"LINKED_ORGANIZATION_NOT_FOUND": ErrCodeLinkedOrganizationNotFound,
	"RECEIVABLE_PARENT_NOT_FOUND":   ErrCodeReceivableParentNotFound,
	"NO_ACTIVE_COMPANY":             ErrCodeNoActiveCompany,
	"VALIDATION_ERROR":              ErrCodeValidation,
	"BAD_REQUEST":                   ErrCodeBadRequest,
	"INTERNAL_ERROR":                ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Field rule codes such as INVALID_NAME become ERR_INVALID_NAME;
// codes already in the API format pass through unchanged.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	if strings.HasPrefix(code, "INVALID_") {
		return "ERR_" + code
	}
	return code
}
