// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
)

// Sentinel errors for console-local failures.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

// RespondError maps errors to RFC7807 responses. Backend failures surface
// as 502 unless the backend rejected the request itself (4xx), in which
// case its status and message pass through.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		Problem(w, apiErr.Status, http.StatusText(apiErr.Status), apiclient.UserMessage(err, ""))
	case errors.Is(err, apiclient.ErrRequestFailed), errors.As(err, &apiErr):
		Problem(w, http.StatusBadGateway, "Bad Gateway", apiclient.UserMessage(err, ""))
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
