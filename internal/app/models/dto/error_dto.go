package dto

// ErrorCode is a machine-readable error identifier
type ErrorCode string

const (
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrorCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrorCodeExpiredToken       ErrorCode = "EXPIRED_TOKEN"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrorCodeResourceNotFound   ErrorCode = "RESOURCE_NOT_FOUND"
	ErrorCodeDuplicateResource  ErrorCode = "DUPLICATE_RESOURCE"
	ErrorCodeInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail describes a single API error
type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the body returned for failed requests
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithDetails attaches supporting detail to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: errorDetail}
}
