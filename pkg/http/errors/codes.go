package errors

// Error codes for standardized error responses
const (
	// Request errors
	ErrCodeUnprocessable    = "unprocessable"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeQuizNotStarted     = "quiz_not_started"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)

// Messages mirror the wording clients of the trivia API already match on.
const (
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgInternalError    = "internal server error"
	MsgUpstreamError    = "upstream error"
)
