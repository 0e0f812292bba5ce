package resilience

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// StatusError records the HTTP status of a failed response.
type StatusError struct {
	StatusCode int
	Err        error
}

// NewStatusError wraps err with the response status code.
func NewStatusError(statusCode int, err error) *StatusError {
	return &StatusError{StatusCode: statusCode, Err: err}
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

// transientMessages catch network failures that arrive flattened into
// wrapped error strings.
var transientMessages = []string{
	"connection reset by peer",
	"connection refused",
	"broken pipe",
	"i/o timeout",
	"tls handshake timeout",
	"temporary failure in name resolution",
	"server closed idle connection",
}

// Retryable reports whether err is likely to succeed on a later attempt:
// retryable HTTP statuses, network timeouts, and dropped connections.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return RetryableStatus(se.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range transientMessages {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// RetryableStatus reports whether an HTTP status signals a transient
// server-side condition.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
