package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Menu-specific errors. Public reads deliberately conflate missing,
	// soft-deleted and unpublished menus under MENU_NOT_FOUND.
	ErrMenuNotFound        = "MENU_NOT_FOUND"
	ErrMenuInvalidData     = "MENU_INVALID_DATA"
	ErrMenuRestoreDisabled = "MENU_RESTORE_DISABLED"

	// Scan/quota errors
	ErrQRCodeNotFound   = "QR_CODE_NOT_FOUND"
	ErrQuotaExceeded    = "QUOTA_EXCEEDED"
	ErrInvalidSignature = "INVALID_SIGNATURE"

	// OAuth/Auth errors (maintain RFC 6749 compatibility)
	ErrInvalidRequest       = "invalid_request"
	ErrInvalidClient        = "invalid_client"
	ErrInvalidGrant         = "invalid_grant"
	ErrUnauthorizedClient   = "unauthorized_client"
	ErrUnsupportedGrantType = "unsupported_grant_type"
	ErrInvalidScope         = "invalid_scope"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
