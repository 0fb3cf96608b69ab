package apiclient

import (
	"errors"
	"fmt"
)

// ErrRequestFailed marks transport and decoding failures, and non-2xx
// responses that carried no readable message.
var ErrRequestFailed = errors.New("request failed")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend status %d", e.Status)
}

// Is lets errors.Is(err, ErrRequestFailed) match responses without a message.
func (e *APIError) Is(target error) bool {
	return target == ErrRequestFailed && e.Message == ""
}

// UserMessage returns the text to show for err: the backend message
// verbatim when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
