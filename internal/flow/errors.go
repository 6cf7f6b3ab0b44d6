package flow

import (
	"errors"
	"fmt"

	"ainoggo/internal/apiclient"
	"ainoggo/internal/domain"
)

// User-facing failure messages.
const (
	msgEnterQuestion    = "enter your question"
	msgConnectionError  = "connection error"
	msgInvalidResponse  = "connection error: invalid response"
	msgCannotReadImage  = "cannot read image"
	documentStatusLabel = "error"
	queryStatusLabel    = "error occurred"
)

// classify turns a backend error into a user-facing message and its kind.
func classify(err error, statusLabel string) (string, domain.ErrorKind) {
	var statusErr *apiclient.StatusError
	var decodeErr *apiclient.DecodeError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("%s: %d", statusLabel, statusErr.StatusCode), domain.ErrorKindHTTPStatus
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("%s: %v", msgInvalidResponse, decodeErr.Err), domain.ErrorKindParse
	default:
		return fmt.Sprintf("%s: %v", msgConnectionError, err), domain.ErrorKindTransport
	}
}
