package net

import (
	"net/http"

	perr "muzzle/internal/platform/errors"
)

// internalMessage replaces the text of errors that are not project errors.
// Their detail (driver messages, DSNs) stays in the logs
const internalMessage = "internal error"

// Envelope wraps every JSON response body
type Envelope struct {
	StatusCode int            `json:"status_code"          example:"200"`
	Status     string         `json:"status"               example:"OK"`
	Code       perr.ErrorCode `json:"code,omitempty"       swaggertype:"integer"`
	Name       string         `json:"name,omitempty"       example:""`
	Error      string         `json:"error,omitempty"      example:""`
	Field      string         `json:"field,omitempty"      example:""`
	RequestID  string         `json:"request_id,omitempty" example:"muzzle-1/abc-000001"`
	Data       any            `json:"data,omitempty"`
}

// Status builds a success envelope for any status
func Status(status int, data any, reqID string) (int, Envelope) {
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Envelope) { return Status(http.StatusOK, data, reqID) }

// Error builds an error envelope; nil is OK
func Error(err error, reqID string) (int, Envelope) {
	if err == nil {
		return OK(nil, reqID)
	}
	status, w := perr.HTTP(err)
	if _, ok := perr.As(err); !ok {
		w.Message = internalMessage
	}
	_, env := Status(status, nil, reqID)
	env.Code = w.Code
	env.Name = w.Name
	env.Error = w.Message
	env.Field = w.Field
	return status, env
}
