package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DataResponse wraps list payloads so the top level is always an object
type DataResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; nothing useful to do on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a standard error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// respondSuccess writes a successful response with 200 OK
func respondSuccess(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, data)
}

// respondList writes a list wrapped in DataResponse
func respondList[T any](w http.ResponseWriter, items []T) {
	respondSuccess(w, DataResponse{Data: items, Count: len(items)})
}
