package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Envelope is the uniform response body: exactly one of Data/Error is
// set; Meta carries pagination.
type Envelope struct {
	Data  any            `json:"data"`
	Error *ErrorResponse `json:"error"`
	Meta  *PageMeta      `json:"meta,omitempty"`
}

// ErrorResponse carries a stable code, a human message and optional
// details (e.g. the conflicting record on a fee-payer clash).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondWithData writes a success envelope.
func RespondWithData(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, Envelope{Data: data})
}

// RespondWithPage writes a success envelope with pagination meta.
func RespondWithPage(w http.ResponseWriter, status int, data any, meta *PageMeta) {
	writeEnvelope(w, status, Envelope{Data: data, Meta: meta})
}

// RespondErrorWithCode writes an error envelope. The optional details is
// included if non-nil; devErr is only logged, never sent to the client.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	details any,
	devErrs ...error,
) {
	writeEnvelope(w, status, Envelope{
		Error: &ErrorResponse{
			Code:    errorCode,
			Message: publicMessage,
			Details: details,
		},
	})

	if len(devErrs) > 0 && devErrs[0] != nil {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"code":   errorCode,
			"error":  devErrs[0].Error(),
		}).Error(publicMessage)
	} else {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"code":   errorCode,
		}).Error(publicMessage)
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
