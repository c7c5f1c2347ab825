package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

const encodeFailure = `{"status":false,"message":"Internal server error"}`

// ResponseJSON encodes the envelope before touching the writer, so an
// unencodable payload still yields a well-formed 500.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	body, err := json.Marshal(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
	if err != nil {
		code = http.StatusInternalServerError
		body = []byte(encodeFailure)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

// ResponseError writes a failed envelope without a payload.
func ResponseError(w http.ResponseWriter, code int, message string) {
	ResponseJSON(w, code, false, message, nil, nil)
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ResponseBadRequest carries field-level validation errors when there are any.
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message)
}

// ResponsePaymentRequired answers hotel requests from users whose ticket
// does not cover lodging.
func ResponsePaymentRequired(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusPaymentRequired, message)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusConflict, message)
}

func ResponseUnavailable(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusServiceUnavailable, message)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message)
}
