package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every failure to reach a collaborator
	ErrTransport = errors.New("upstream unreachable")
	// ErrAPI matches every non-success answer from a collaborator
	ErrAPI = errors.New("upstream rejected request")
)

// TransportError is a network level failure: DNS, refused connection, timeout,
// cancelled context or an unreadable body.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// APIError is a response that arrived but reports failure, either through a
// non-2xx status or through success=false in the envelope.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, msg, e.StatusCode)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// UserMessage is the text shown to the factory user for a failed call
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrTransport) {
		return "Could not reach the factory server. Check the connection and try again."
	}
	return err.Error()
}
