package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeInvalidShoe    = "INVALID_SHOE"
	ErrCodeShoeNotFound   = "SHOE_NOT_FOUND"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeDuplicateSlug  = "DUPLICATE_SLUG"
	ErrCodeUnknownSection = "UNKNOWN_SECTION"
	ErrCodeInvalidSort    = "INVALID_SORT"
	ErrCodeInvalidParam   = "INVALID_PARAMETER"
	ErrCodeUnauthorised   = "UNAUTHORIZED"
	ErrCodeMethodNotAllow = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrShoeNotFound   = NewDomainError(ErrCodeShoeNotFound, "Shoe not found")
	ErrDuplicateSlug  = NewDomainError(ErrCodeDuplicateSlug, "A shoe with this slug already exists")
	ErrUnknownSection = NewDomainError(ErrCodeUnknownSection, "Unknown catalogue section")
	ErrInvalidSort    = NewDomainError(ErrCodeInvalidSort, "Sort must be newest or price")
)
