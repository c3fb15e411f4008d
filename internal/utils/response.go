package utils

import (
	"encoding/json"
	"net/http"

	"VIAJAPLUS_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body. The message must be safe to
// show to a client; storage error strings are logged by the caller instead.
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}
