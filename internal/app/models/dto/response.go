package dto

// MessageResponse represents a standard success response for API endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard error payload. RequiredFields is populated
// only for missing-field validation failures and enumerates the presence of
// each required field.
type ErrorResponse struct {
	Message        string          `json:"message"`
	RequiredFields map[string]bool `json:"requiredFields,omitempty"`
}

// NewErrorResponse creates an error response with a message only
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}
