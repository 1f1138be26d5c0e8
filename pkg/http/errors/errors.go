package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, code, message string) {
	write(w, ErrorResponse{
		Error:   status,
		Code:    code,
		Message: message,
	})
}

// RespondValidationError writes an unprocessable response naming the offending field
func RespondValidationError(w http.ResponseWriter, field string) {
	write(w, ErrorResponse{
		Error:   http.StatusUnprocessableEntity,
		Code:    ErrCodeUnprocessable,
		Message: MsgUnprocessable,
		Field:   field,
	})
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound, ErrCodeNotFound, MsgNotFound)
}

// RespondUnprocessable writes an unprocessable entity response
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity, ErrCodeUnprocessable, MsgUnprocessable)
}

// RespondMethodNotAllowed writes a method not allowed response
func RespondMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	RespondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, MsgMethodNotAllowed)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, ErrCodeInternalError, MsgInternalError)
}

func write(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Error)
	_ = json.NewEncoder(w).Encode(resp)
}
