package dto

import "time"

// ErrorResponse is the standardized error body returned by every endpoint.
//
// Fields match the API contract:
//   - Message: human-readable summary of what failed.
//   - ErrorDetails: underlying error text, when one exists.
//   - Timestamp: server time at which the error response was built.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid top_n"`
	ErrorDetails string    `json:"error,omitempty" example:"top_n must be >= 1"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// inner error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface so an ErrorResponse can travel through
// error-returning call chains.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
